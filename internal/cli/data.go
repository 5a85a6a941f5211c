package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "wallet-advisor/internal/errors"
	"wallet-advisor/internal/store"
)

// addDataCommands adds database seeding and CSV import/export commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}

	cmd.AddCommand(newDBSeedCmd(app))
	cmd.AddCommand(newDBImportCmd(app))
	cmd.AddCommand(newDBExportCmd(app))
	rootCmd.AddCommand(cmd)
}

func newDBSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with sample users, cards, and transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			if err := store.Seed(ctx, app.Store); err != nil {
				output.Error("Seeding failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]bool{"seeded": true})
			}
			output.Success("✓ Database seeded")
			output.Dim("Try: wallet recommend --user john.doe@example.com --merchant Starbucks --amount 6.75")
			return nil
		},
	}
}

func newDBImportCmd(app *App) *cobra.Command {
	var (
		userFlag string
		fileFlag string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from a CSV file",
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

			f, err := os.Open(fileFlag)
			if err != nil {
				return fmt.Errorf("opening %s: %w", fileFlag, err)
			}
			defer f.Close()

			count, err := store.ImportTransactionsCSV(ctx, app.Store, user.ID, f)
			if err != nil {
				output.Error("Import failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]int{"imported": count})
			}
			output.Success("✓ Imported %d transactions", count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "user ID or email (required)")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "CSV file path (required)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newDBExportCmd(app *App) *cobra.Command {
	var (
		userFlag string
		fileFlag string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's transactions to a CSV file",
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

			f, err := os.Create(fileFlag)
			if err != nil {
				return fmt.Errorf("creating %s: %w", fileFlag, err)
			}
			defer f.Close()

			count, err := store.ExportTransactionsCSV(ctx, app.Store, user.ID, f)
			if err != nil {
				output.Error("Export failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]int{"exported": count})
			}
			output.Success("✓ Exported %d transactions to %s", count, fileFlag)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "user ID or email (required)")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "CSV file path (required)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("file")

	return cmd
}
