package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "wallet-advisor/internal/errors"
	"wallet-advisor/internal/store"
	"wallet-advisor/pkg/utils"
)

// addInsightCommands adds the profile and opportunity commands.
func addInsightCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newProfileCmd(app))
	rootCmd.AddCommand(newOpportunitiesCmd(app))
}

func newProfileCmd(app *App) *cobra.Command {
	var (
		userFlag string
		saveFlag bool
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show a user's behavior profile",
		Long: `Show a user's behavior profile.

The profile is recomputed from the user's full transaction history:
preferred optimization goal, most common categories, and spending stats.`,
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

			history, err := app.Store.GetTransactions(ctx, store.TransactionFilter{UserID: user.ID})
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			profile := app.Advisor.Profiler().Learn(user.ID, history)
			if saveFlag {
				if err := app.Store.SaveProfile(ctx, profile); err != nil {
					return fmt.Errorf("saving profile: %w", err)
				}
			}

			if output.IsJSON() {
				return output.JSON(profile)
			}

			output.Bold("Behavior Profile: %s", user.FullName)
			output.Printf("  Preferred goal:  %s\n", profile.PreferredGoal)
			if len(profile.CommonCategories) > 0 {
				cats := make([]string, len(profile.CommonCategories))
				for i, c := range profile.CommonCategories {
					cats[i] = string(c)
				}
				output.Printf("  Top categories:  %s\n", strings.Join(cats, ", "))
			}
			output.Printf("  Transactions:    %d\n", profile.Spending.TransactionCount)
			output.Printf("  Total spent:     %s\n", utils.FormatUSD(profile.Spending.TotalSpent))
			output.Printf("  Avg transaction: %s\n", utils.FormatUSD(profile.Spending.AvgTransaction))
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "user ID or email (required)")
	cmd.Flags().BoolVar(&saveFlag, "save", false, "persist the recomputed profile")
	cmd.MarkFlagRequired("user")

	return cmd
}

func newOpportunitiesCmd(app *App) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "opportunities",
		Short: "Show recent missed reward opportunities",
		Long: `Show recent missed reward opportunities.

Scans the most recent transactions for purchases where a different card
than the recommended one was used.`,
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

			history, err := app.Store.GetTransactions(ctx, store.TransactionFilter{UserID: user.ID})
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			opportunities := app.Advisor.Detector().Detect(user.ID, history)
			if output.IsJSON() {
				return output.JSON(opportunities)
			}

			if len(opportunities) == 0 {
				output.Success("No missed opportunities in your recent transactions")
				return nil
			}

			output.Bold("Missed Opportunities (%d)", len(opportunities))
			total := 0.0
			for _, opp := range opportunities {
				output.Printf("  %-20s %10s  %s\n",
					opp.Merchant, utils.FormatUSD(opp.Amount), opp.Suggestion)
				total += opp.MissedValue
			}
			output.Println()
			output.Printf("  Total missed value: %s\n", output.Yellow(utils.FormatUSD(total)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "user ID or email (required)")
	cmd.MarkFlagRequired("user")

	return cmd
}
