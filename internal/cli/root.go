// Package cli provides the command-line interface for the wallet advisor application.
package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wallet-advisor/internal/advisor"
	"wallet-advisor/internal/config"
	"wallet-advisor/internal/engine"
	"wallet-advisor/internal/logging"
	"wallet-advisor/internal/models"
	"wallet-advisor/internal/places"
	"wallet-advisor/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-01-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.DataStore
	Engine  *engine.RewardsEngine
	Advisor *advisor.Orchestrator
	Places  places.Provider
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize SQLite store
	dataStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Database.Path).Msg("SQLite store initialized")
	}

	// Initialize rewards engine, with LLM explanations if configured
	var engineOpts []engine.Option
	if cfg.Engine.LLMExplanation && cfg.Credentials.OpenAI.APIKey != "" {
		engineOpts = append(engineOpts, engine.WithLLM(
			engine.NewOpenAIClient(cfg.Credentials.OpenAI.APIKey, cfg.Engine.Model),
		))
		logger.Debug().Str("model", cfg.Engine.Model).Msg("OpenAI explanation client initialized")
	}
	app.Engine = engine.NewRewardsEngine(cfg.Engine.PointValue, engineOpts...)

	// Initialize the advisor pipeline
	app.Advisor = advisor.New(app.Engine, cfg.Advisor, logger)

	// Initialize places provider: Google if a key is present, mock otherwise
	if cfg.Credentials.Google.PlacesAPIKey != "" && !cfg.Places.UseMock {
		app.Places = places.NewGoogleProvider(cfg.Credentials.Google.PlacesAPIKey)
		logger.Debug().Msg("Google Places provider initialized")
	} else {
		app.Places = places.NewMockProvider()
		logger.Debug().Msg("Mock places provider initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet Advisor - credit card recommendation CLI",
		Long: `Wallet Advisor recommends the best credit card for each purchase.

It scores your cards by expected reward value, enriches recommendations
with behavioral context, and learns from your feedback over time.

Use 'wallet help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/wallet-advisor)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addRecommendCommands(rootCmd, app)
	addRuleCommands(rootCmd, app)
	addFeedbackCommands(rootCmd, app)
	addPlanCommands(rootCmd, app)
	addInsightCommands(rootCmd, app)
	addPlacesCommands(rootCmd, app)
	addDataCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Wallet Advisor v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Advisor Configuration")
	output.Printf("  Min Feedback:     %d\n", cfg.Advisor.MinFeedbackSamples)
	output.Printf("  History Window:   %d\n", cfg.Advisor.HistoryWindow)
	output.Printf("  Max Opportunities: %d\n", cfg.Advisor.MaxOpportunities)
	output.Printf("  Usual Monthly:    $%.2f\n", cfg.Advisor.UsualMonthlySpend)
	output.Printf("  Recurring:        %s\n", strings.Join(cfg.Advisor.RecurringMerchants, ", "))
	output.Println()

	output.Bold("Engine Configuration")
	output.Printf("  Point Value:      $%.3f\n", cfg.Engine.PointValue)
	output.Printf("  LLM Explanation:  %v\n", cfg.Engine.LLMExplanation)
	output.Printf("  Model:            %s\n", cfg.Engine.Model)
	output.Println()

	output.Bold("Database")
	output.Printf("  Path:             %s\n", cfg.Database.Path)
	output.Println()

	output.Bold("Places")
	output.Printf("  Radius:           %dm\n", cfg.Places.RadiusMeters)
	output.Printf("  Use Mock:         %v\n", cfg.Places.UseMock)

	return nil
}

// resolveUser looks up a user by ID first, then by email.
func (a *App) resolveUser(ctx context.Context, identifier string) (*models.User, error) {
	user, err := a.Store.GetUser(ctx, identifier)
	if err == nil {
		return user, nil
	}
	return a.Store.GetUserByEmail(ctx, identifier)
}

// hydrateAdvisor loads a user's persisted rules and the feedback log into
// the in-memory pipeline components.
func (a *App) hydrateAdvisor(ctx context.Context, userID string) error {
	rules, err := a.Store.GetRules(ctx, userID)
	if err != nil {
		return err
	}
	a.Advisor.Matcher().Load(userID, rules)

	feedback, err := a.Store.GetFeedback(ctx)
	if err != nil {
		return err
	}
	a.Advisor.Learner().Load(feedback)
	return nil
}
