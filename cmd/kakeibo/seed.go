package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/spf13/cobra"

	"kakeibo/internal/cli"
	"kakeibo/internal/model"
)

// seedCategories is the starter set created by `kakeibo seed`.
var seedCategories = []model.Category{
	{Name: "Food", Icon: "🍜", Color: "#FF6B6B"},
	{Name: "Transport", Icon: "🚃", Color: "#4ECDC4"},
	{Name: "Utilities", Icon: "💡", Color: "#FFE66D"},
	{Name: "Entertainment", Icon: "🎮", Color: "#95E1D3"},
	{Name: "Salary", Icon: "💰", Color: "#65BBE9"},
}

var seedTitles = []string{
	"Lunch", "Groceries", "Train fare", "Coffee", "Electricity",
	"Streaming", "Dinner out", "Taxi", "Phone bill", "Snacks",
}

func seedCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the ledger with sample data",
		Long: `Create a starter set of categories and a batch of randomized records.
Useful for demos and for trying the UI on a fresh database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var categoryIDs []int64
			for _, cat := range seedCategories {
				created, err := store.CreateCategory(ctx, cat.Name, cat.Icon, cat.Color)
				if err != nil {
					// Categories from an earlier seed run are fine.
					continue
				}
				categoryIDs = append(categoryIDs, created.ID)
			}
			if len(categoryIDs) == 0 {
				existing, err := store.GetCategories(ctx)
				if err != nil {
					return fmt.Errorf("failed to load categories: %w", err)
				}
				for _, cat := range existing {
					categoryIDs = append(categoryIDs, cat.ID)
				}
			}

			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			created := 0
			for i := 0; i < count; i++ {
				isExpense := rng.Intn(10) < 8 // mostly outflows, like a real ledger
				amount := float64((rng.Intn(80) + 1) * 100)
				if !isExpense {
					amount = float64((rng.Intn(30) + 20) * 10000)
				}

				categoryID := categoryIDs[rng.Intn(len(categoryIDs))]
				expense := &model.Expense{
					Title:       seedTitles[rng.Intn(len(seedTitles))],
					Amount:      amount,
					IsExpense:   isExpense,
					CategoryID:  &categoryID,
					Date:        time.Now().AddDate(0, 0, -rng.Intn(60)),
					Description: faker.Sentence(),
				}
				if err := store.SaveExpense(ctx, expense); err != nil {
					return fmt.Errorf("failed to save sample record: %w", err)
				}
				created++
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Seeded %d categories and %d records", len(categoryIDs), created)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 25, "number of sample records to create")

	return cmd
}
