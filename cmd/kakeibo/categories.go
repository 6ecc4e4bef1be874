package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"kakeibo/internal/cli"
	"kakeibo/internal/viewmodel"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage ledger categories",
		Long:  `List, add, update, and delete the categories that records are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No categories found. Use 'kakeibo categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Icon"),
				headerStyle.Render("Name"),
				headerStyle.Render("Color"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 8))

			for _, cat := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", cat.ID, cat.Icon, cat.Name, cat.Color)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		icon  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long:  `Create a new category. Icon and color fall back to the standard defaults.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			vm := viewmodel.NewCategoriesViewModel(store, stdoutNotifier{}, terminalConfirmer{})
			vm.NewName = args[0]
			vm.NewIcon = icon
			vm.NewColor = color
			vm.Add(ctx)

			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "icon shown next to the category")
	cmd.Flags().StringVar(&color, "color", "", "hex accent color, e.g. #65BBE9")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		icon  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Update a category's name, icon, or color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			vm := viewmodel.NewCategoriesViewModel(store, stdoutNotifier{}, terminalConfirmer{})
			vm.Load(ctx)

			found := false
			for _, cat := range vm.Categories {
				if cat.ID == id {
					vm.BeginEdit(cat)
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("category %d not found", id)
			}

			vm.EditName = args[1]
			if icon != "" {
				vm.EditIcon = icon
			}
			if color != "" {
				vm.EditColor = color
			}
			vm.SaveEdit(ctx)

			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "icon shown next to the category")
	cmd.Flags().StringVar(&color, "color", "", "hex accent color, e.g. #65BBE9")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category by id. The delete is refused while any record still
references the category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			vm := viewmodel.NewCategoriesViewModel(store, stdoutNotifier{}, pickConfirmer(yes))
			vm.Load(ctx)

			for _, cat := range vm.Categories {
				if cat.ID == id {
					vm.Delete(ctx, cat)
					return nil
				}
			}
			return fmt.Errorf("category %d not found", id)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
