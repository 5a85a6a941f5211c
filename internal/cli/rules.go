package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet-advisor/internal/advisor"
	apperrors "wallet-advisor/internal/errors"
	"wallet-advisor/internal/models"
)

// addRuleCommands adds the automation rule commands.
func addRuleCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage automation rules",
		Long: `Manage automation rules.

A rule pairs a condition on incoming transactions with a card action.
When a rule matches, its action replaces the computed recommendation.`,
	}

	cmd.AddCommand(newRuleAddCmd(app))
	cmd.AddCommand(newRuleListCmd(app))
	rootCmd.AddCommand(cmd)
}

func newRuleAddCmd(app *App) *cobra.Command {
	var (
		userFlag      string
		fieldFlag     string
		opFlag        string
		valueFlag     string
		conditionFlag string
		actionFlag    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an automation rule",
		Example: `  wallet rules add --user john.doe@example.com --field merchant --op == --value Starbucks --action "Amex Gold"
  wallet rules add --user john.doe@example.com --condition "merchant == 'Starbucks'" --action "Amex Gold"`,
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

			var condition models.RuleCondition
			if conditionFlag != "" {
				condition = advisor.ParseCondition(conditionFlag)
				if condition.Field == "" {
					output.Warning("Unrecognized condition; the rule will never match")
				}
			} else {
				condition = models.RuleCondition{
					Field: models.RuleField(fieldFlag),
					Op:    models.RuleOperator(opFlag),
					Value: valueFlag,
				}
			}

			rule := app.Advisor.Matcher().AddRule(user.ID, condition, actionFlag)
			if err := app.Store.SaveRule(ctx, &rule); err != nil {
				return fmt.Errorf("saving rule: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(rule)
			}
			output.Success("✓ Rule %s added", rule.ID)
			output.Printf("  When %s %s %s, use %s\n",
				rule.Condition.Field, rule.Condition.Op, rule.Condition.Value, rule.Action)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "user ID or email (required)")
	cmd.Flags().StringVar(&fieldFlag, "field", "merchant", "condition field: merchant, category, amount")
	cmd.Flags().StringVar(&opFlag, "op", "==", "condition operator: ==, >, <")
	cmd.Flags().StringVar(&valueFlag, "value", "", "condition value")
	cmd.Flags().StringVar(&conditionFlag, "condition", "", "legacy condition string, e.g. \"merchant == 'Starbucks'\"")
	cmd.Flags().StringVar(&actionFlag, "action", "", "card to use when the rule matches (required)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("action")

	return cmd
}

func newRuleListCmd(app *App) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's automation rules",
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

			rules, err := app.Store.GetRules(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("loading rules: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(rules)
			}

			if len(rules) == 0 {
				output.Println("No automation rules.")
				return nil
			}

			output.Bold("Automation Rules (%d)", len(rules))
			for i, rule := range rules {
				output.Printf("  %d. [%s] when %s %s %s, use %s\n",
					i+1, output.DimText(rule.ID),
					rule.Condition.Field, rule.Condition.Op, rule.Condition.Value,
					output.Cyan(rule.Action))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "user ID or email (required)")
	cmd.MarkFlagRequired("user")

	return cmd
}
