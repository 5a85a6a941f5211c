package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "wallet-advisor/internal/errors"
	"wallet-advisor/internal/models"
)

// addFeedbackCommands adds the feedback commands.
func addFeedbackCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record and review recommendation feedback",
	}

	cmd.AddCommand(newFeedbackRecordCmd(app))
	cmd.AddCommand(newFeedbackReportCmd(app))
	rootCmd.AddCommand(cmd)
}

func newFeedbackRecordCmd(app *App) *cobra.Command {
	var (
		txnFlag      string
		acceptedFlag bool
		cardFlag     string
		ratingFlag   int
	)

	cmd := &cobra.Command{
		Use:     "record",
		Short:   "Record feedback for a recommendation",
		Example: `  wallet feedback record --txn TXN-123 --accepted --card "Amex Gold" --rating 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			record := app.Advisor.Learner().Record(txnFlag, models.Feedback{
				Accepted: acceptedFlag,
				CardUsed: cardFlag,
				Rating:   ratingFlag,
			})
			if err := app.Store.SaveFeedback(ctx, &record); err != nil {
				return fmt.Errorf("saving feedback: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(record)
			}
			output.Success("✓ Feedback recorded for %s", txnFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&txnFlag, "txn", "", "transaction ID (required)")
	cmd.Flags().BoolVar(&acceptedFlag, "accepted", false, "the recommendation was followed")
	cmd.Flags().StringVar(&cardFlag, "card", "", "card actually used")
	cmd.Flags().IntVar(&ratingFlag, "rating", 0, "rating from 1 to 5")
	cmd.MarkFlagRequired("txn")

	return cmd
}

func newFeedbackReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the acceptance-rate adjustment report",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			feedback, err := app.Store.GetFeedback(ctx)
			if err != nil {
				return fmt.Errorf("loading feedback: %w", err)
			}
			app.Advisor.Learner().Load(feedback)

			report := app.Advisor.Learner().DeriveAdjustments()
			if output.IsJSON() {
				return output.JSON(report)
			}

			output.Bold("Feedback Report")
			output.Printf("  Responses: %d\n", report.TotalFeedback)
			if report.Status == models.AdjustmentInsufficientData {
				output.Warning("  Not enough feedback yet to derive adjustments")
				return nil
			}

			output.Printf("  Acceptance rate: %.0f%%\n", report.AcceptanceRate*100)
			if report.IncreaseExplanationDetail {
				output.Info("  Explanations will carry more detail")
			}
			if report.WeightUserPreference {
				output.Info("  Your card preferences will be weighted more heavily")
			}
			if !report.IncreaseExplanationDetail && !report.WeightUserPreference {
				output.Success("  Recommendations are landing well, no adjustments needed")
			}
			return nil
		},
	}

	return cmd
}
