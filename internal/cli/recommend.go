package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wallet-advisor/internal/advisor"
	apperrors "wallet-advisor/internal/errors"
	"wallet-advisor/internal/models"
	"wallet-advisor/internal/store"
	"wallet-advisor/pkg/utils"
)

// addRecommendCommands adds the recommendation commands.
func addRecommendCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newRecommendCmd(app))
}

func newRecommendCmd(app *App) *cobra.Command {
	var (
		userFlag     string
		merchantFlag string
		amountFlag   float64
		categoryFlag string
		recordFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend the best card for a purchase",
		Long: `Recommend the best card for a purchase.

Runs the full pipeline: profiles your history, checks automation rules,
scores your cards, and enriches the result with contextual insights and
missed-opportunity data.`,
		Example: `  wallet recommend --user john.doe@example.com --merchant "Whole Foods" --amount 85.50
  wallet recommend --user USR-1 --merchant Starbucks --amount 6.75 --category dining`,
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

			cards, err := app.Store.GetCards(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("loading cards: %w", err)
			}

			history, err := app.Store.GetTransactions(ctx, store.TransactionFilter{UserID: user.ID})
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			if err := app.hydrateAdvisor(ctx, user.ID); err != nil {
				return fmt.Errorf("loading advisor state: %w", err)
			}

			category := models.ParseCategory(categoryFlag)
			if categoryFlag == "" {
				// Fall back to the merchant's known category.
				if merchant, merr := app.Store.GetMerchant(ctx, merchantFlag); merr == nil {
					category = merchant.Category
				}
			}

			txn := models.Transaction{
				UserID:    user.ID,
				Merchant:  merchantFlag,
				Amount:    amountFlag,
				Category:  category,
				Goal:      user.DefaultGoal,
				Timestamp: time.Now(),
			}

			rec, err := app.Advisor.Recommend(ctx, advisor.Request{
				UserID:      user.ID,
				Transaction: txn,
				Cards:       cards,
				History:     history,
			})
			if err != nil {
				output.Error("Recommendation failed: %v", err)
				return err
			}

			if recordFlag {
				if rec.Profile != nil {
					if err := app.Store.SaveProfile(ctx, rec.Profile); err != nil {
						app.Logger.Warn().Err(err).Msg("Failed to save profile")
					}
				}
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			printRecommendation(output, rec)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "user ID or email (required)")
	cmd.Flags().StringVarP(&merchantFlag, "merchant", "m", "", "merchant name (required)")
	cmd.Flags().Float64VarP(&amountFlag, "amount", "a", 0, "purchase amount in dollars (required)")
	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "spending category (default: merchant's category)")
	cmd.Flags().BoolVar(&recordFlag, "save-profile", false, "persist the derived behavior profile")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("merchant")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func printRecommendation(output *Output, rec *models.EnrichedRecommendation) {
	if rec.Source == models.SourceAutomation {
		output.Bold("Recommendation (automation rule)")
		output.Printf("  Card:   %s\n", output.Cyan(rec.Base.RecommendedCard))
		output.Printf("  Reason: %s\n", rec.Reason)
		return
	}

	output.Bold("Recommendation")
	output.Printf("  Card:       %s\n", output.Cyan(rec.Base.RecommendedCard))
	output.Printf("  Value:      %s\n", output.Green(utils.FormatUSD(rec.Base.ExpectedValue)))
	output.Printf("  Confidence: %.0f%%\n", rec.Base.ConfidenceScore)
	if rec.Base.Explanation != "" {
		output.Printf("  Why:        %s\n", rec.Base.Explanation)
	}

	if len(rec.Base.Alternatives) > 0 {
		output.Println()
		output.Bold("Alternatives")
		for _, alt := range rec.Base.Alternatives {
			output.Printf("  %-28s %s\n", alt.Card, utils.FormatUSD(alt.ExpectedValue))
		}
	}

	if len(rec.ContextualInsights) > 0 {
		output.Println()
		output.Bold("Insights")
		for _, insight := range rec.ContextualInsights {
			output.Printf("  • %s\n", insight)
		}
	}

	if len(rec.MissedOpportunities) > 0 {
		output.Println()
		output.Bold("Missed Opportunities")
		for _, opp := range rec.MissedOpportunities {
			output.Printf("  %s (%s): %s\n", opp.Merchant, utils.FormatUSD(opp.Amount), opp.Suggestion)
		}
	}

	output.Println()
	switch rec.Adjustments.Status {
	case models.AdjustmentInsufficientData:
		output.Dim("Feedback: insufficient data (%d responses)", rec.Adjustments.TotalFeedback)
	default:
		output.Dim("Feedback acceptance rate: %.0f%% over %d responses",
			rec.Adjustments.AcceptanceRate*100, rec.Adjustments.TotalFeedback)
	}
}
