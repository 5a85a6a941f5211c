package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "wallet-advisor/internal/errors"
	"wallet-advisor/internal/models"
	"wallet-advisor/internal/store"
	"wallet-advisor/pkg/utils"
)

// addPlanCommands adds the strategic planning commands.
func addPlanCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPlanCmd(app))
}

func newPlanCmd(app *App) *cobra.Command {
	var (
		userFlag    string
		expenseFlag []string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan card usage for upcoming expenses",
		Long: `Plan card usage for upcoming expenses.

Each expense is given as merchant:amount[:category]. The plan assigns a
card per expense and totals the expected reward value.`,
		Example: `  wallet plan --user john.doe@example.com \
    --expense "Whole Foods:120:groceries" \
    --expense "Delta:450:travel" \
    --expense "Shell:40:gas"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			user, err := app.resolveUser(ctx, userFlag)
			if err != nil {
				output.Error("User not found: %s", userFlag)
				return err
			}

			expenses, err := parseExpenses(expenseFlag)
			if err != nil {
				return err
			}

			history, err := app.Store.GetTransactions(ctx, store.TransactionFilter{UserID: user.ID})
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			profile := app.Advisor.Profiler().Learn(user.ID, history)

			plan := app.Advisor.Planner().Plan(profile, expenses)
			if output.IsJSON() {
				return output.JSON(plan)
			}

			output.Bold("Strategic Plan (%d expenses)", len(plan.Entries))
			for _, entry := range plan.Entries {
				output.Printf("  %-24s %10s  use %s (%s)\n",
					entry.Expense,
					utils.FormatUSD(entry.Amount),
					output.Cyan(entry.RecommendedCard),
					utils.FormatUSD(entry.ExpectedValue))
			}
			output.Println()
			output.Printf("  Total expected value: %s\n", output.Green(utils.FormatUSD(plan.TotalExpectedValue)))
			for _, tip := range plan.Tips {
				output.Info("  Tip: %s", tip)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "user ID or email (required)")
	cmd.Flags().StringArrayVarP(&expenseFlag, "expense", "e", nil, "expense as merchant:amount[:category] (repeatable)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("expense")

	return cmd
}

// parseExpenses parses merchant:amount[:category] expense specs.
func parseExpenses(specs []string) ([]models.PlannedExpense, error) {
	expenses := make([]models.PlannedExpense, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid expense %q: expected merchant:amount[:category]", spec)
		}

		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in expense %q: %w", spec, err)
		}

		category := models.CategoryOther
		if len(parts) > 2 {
			category = models.ParseCategory(parts[2])
		}

		expenses = append(expenses, models.PlannedExpense{
			Merchant: parts[0],
			Amount:   amount,
			Category: category,
		})
	}
	return expenses, nil
}
