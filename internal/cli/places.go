package cli

import (
	"github.com/spf13/cobra"

	"wallet-advisor/internal/places"
)

// addPlacesCommands adds the nearby-places commands.
func addPlacesCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Look up nearby places",
	}

	cmd.AddCommand(newPlacesNearbyCmd(app))
	rootCmd.AddCommand(cmd)
}

func newPlacesNearbyCmd(app *App) *cobra.Command {
	var (
		latFlag    float64
		lngFlag    float64
		radiusFlag int
		typesFlag  []string
	)

	cmd := &cobra.Command{
		Use:     "nearby",
		Short:   "List nearby places with their spending categories",
		Example: `  wallet places nearby --lat 37.7749 --lng -122.4194 --radius 2000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := cmd.Context()

			radius := radiusFlag
			if radius <= 0 {
				radius = app.Config.Places.RadiusMeters
			}

			results, err := app.Places.GetNearbyPlaces(ctx, latFlag, lngFlag, radius, typesFlag)
			if err != nil {
				output.Error("Place lookup failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(results)
			}

			if len(results) == 0 {
				output.Println("No places found.")
				return nil
			}

			output.Bold("Nearby Places (%d)", len(results))
			for _, p := range results {
				open := output.Green("open")
				if !p.Open {
					open = output.DimText("closed")
				}
				output.Printf("  %-28s %-14s %8s  %.1f★  %s\n",
					p.Name, p.Category, places.FormatDistance(p.DistanceMeters), p.Rating, open)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&latFlag, "lat", 0, "latitude (required)")
	cmd.Flags().Float64Var(&lngFlag, "lng", 0, "longitude (required)")
	cmd.Flags().IntVar(&radiusFlag, "radius", 0, "search radius in meters (default: config)")
	cmd.Flags().StringSliceVar(&typesFlag, "type", nil, "place types to search (default: rewards-relevant types)")
	cmd.MarkFlagRequired("lat")
	cmd.MarkFlagRequired("lng")

	return cmd
}
