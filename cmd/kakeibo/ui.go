package main

import (
	"github.com/spf13/cobra"

	"kakeibo/internal/tui"
)

func uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal interface",
		Long: `Open a full-screen terminal interface for browsing records,
adding entries, and managing categories.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return tui.Run(store)
		},
	}
}
