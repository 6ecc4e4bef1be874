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

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage ledger records",
		Long:  `List, add, and delete expense and income records.`,
	}

	cmd.AddCommand(listRecordsCmd())
	cmd.AddCommand(addRecordCmd())
	cmd.AddCommand(deleteRecordCmd())

	return cmd
}

func listRecordsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.GetExpenses(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to get records: %w", err)
			}

			if len(records) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No records yet. Use 'kakeibo records add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Date"),
				headerStyle.Render("Title"),
				headerStyle.Render("Category"),
				headerStyle.Render("Amount"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 10),
				strings.Repeat("-", 20),
				strings.Repeat("-", 12),
				strings.Repeat("-", 10))

			for _, rec := range records {
				amountStyle := cli.IncomeStyle
				if rec.IsExpense {
					amountStyle = cli.ExpenseStyle
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%s\n",
					rec.ID,
					rec.FormattedDate(),
					rec.Title,
					rec.CategoryIcon,
					rec.CategoryName,
					amountStyle.Render(rec.FormattedAmount()))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum records to show (default 50)")

	return cmd
}

func addRecordCmd() *cobra.Command {
	var (
		amount      string
		categoryID  int64
		description string
		income      bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new record",
		Long: `Record an expense (the default) or income entry. The amount must be
positive; the sign is carried by the expense/income flag.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			vm := viewmodel.NewRecordsViewModel(store, stdoutNotifier{}, terminalConfirmer{})
			vm.LoadCategories(ctx)

			vm.Title = args[0]
			vm.Amount = amount
			vm.Description = description
			vm.CategoryID = categoryID
			vm.IsExpense = !income
			vm.AddRecord(ctx)

			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount in yen (required)")
	cmd.Flags().Int64VarP(&categoryID, "category", "c", 0, "category id (omit for uncategorized)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "optional free-text note")
	cmd.Flags().BoolVar(&income, "income", false, "record income instead of an expense")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func deleteRecordCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			vm := viewmodel.NewRecordsViewModel(store, stdoutNotifier{}, pickConfirmer(yes))
			vm.DeleteRecord(ctx, id)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
