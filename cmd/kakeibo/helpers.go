package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"kakeibo/internal/config"
	"kakeibo/internal/service"
	"kakeibo/internal/storage"
)

// initStorage opens the ledger database and brings its schema up to date.
// Schema failure here is fatal: commands must not run against an
// uninitialized store.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// stdoutNotifier prints view-model alerts to standard output.
type stdoutNotifier struct{}

func (stdoutNotifier) Alert(message string) {
	fmt.Println(message)
}

// terminalConfirmer asks for a y/N answer on the terminal.
type terminalConfirmer struct{}

func (terminalConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// autoConfirmer approves every prompt, for --yes flags.
type autoConfirmer struct{}

func (autoConfirmer) Confirm(string) bool { return true }

// pickConfirmer returns the confirmer matching a --yes flag.
func pickConfirmer(yes bool) service.Confirmer {
	if yes {
		return autoConfirmer{}
	}
	return terminalConfirmer{}
}
