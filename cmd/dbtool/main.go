package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"

	"water-redistribution-service/internal/adapters/cache"
	"water-redistribution-service/internal/adapters/distance"
	"water-redistribution-service/internal/adapters/repositories"
	"water-redistribution-service/internal/config"
	"water-redistribution-service/internal/platform/db"
	"water-redistribution-service/internal/report"
	"water-redistribution-service/internal/services"
)

func main() {
	config.LoadDotEnv()

	var databaseURL string

	rootCmd := &cobra.Command{
		Use:          "dbtool",
		Short:        "Manage the wells and zones database",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", config.Get("DATABASE_URL", ""), "Postgres connection URL")

	rootCmd.AddCommand(migrateCmd(&databaseURL))
	rootCmd.AddCommand(seedCmd(&databaseURL))
	rootCmd.AddCommand(reportCmd(&databaseURL))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd(databaseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the wells and zones tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := open(*databaseURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			log.Println("Initializing database schema...")
			if err := repositories.InitSchema(cmd.Context(), conn); err != nil {
				return err
			}
			log.Println("Schema ready.")
			return nil
		},
	}
}

func seedCmd(databaseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [wells.json] [zones.json]",
		Short: "Upsert wells and zones from JSON files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := open(*databaseURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx := cmd.Context()
			if err := repositories.InitSchema(ctx, conn); err != nil {
				return err
			}

			log.Println("Seeding database...")
			if err := repositories.SeedFromJSON(ctx, conn, args[0], args[1]); err != nil {
				return err
			}
			log.Println("Seeding complete.")

			invalidateWellCache(ctx)
			return nil
		},
	}
}

func reportCmd(databaseURL *string) *cobra.Command {
	var (
		vehicle  string
		scenario float64
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the general summary for every sector and district",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			analysis, err := config.LoadAnalysis(config.Get("ANALYSIS_CONFIG", ""))
			if err != nil {
				return err
			}

			ov := config.Overrides{Vehicle: vehicle}
			if cmd.Flags().Changed("scenario") {
				ov.ScenarioPercent = &scenario
			}
			opts, err := analysis.Options(ov)
			if err != nil {
				return err
			}

			provider, err := distance.NewProvider(config.Get("DISTANCE_MODE", "planar"))
			if err != nil {
				return err
			}

			conn, err := open(*databaseURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			analyzer := services.NewAnalyzer(
				repositories.NewPostgresWellRepository(conn),
				repositories.NewPostgresZoneRepository(conn),
				provider,
			)
			rows, err := analyzer.Summarize(cmd.Context(), opts, analysis.CriticalDistricts)
			if err != nil {
				return err
			}

			return report.WriteSummary(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVar(&vehicle, "vehicle", "", "tanker size from the analysis menu (default from config)")
	cmd.Flags().Float64Var(&scenario, "scenario", 0, "percentage of well yield available (default from config)")
	return cmd
}

func open(databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return db.Open(databaseURL)
}

// invalidateWellCache drops a cached wells snapshot so servers pick up the new seed.
func invalidateWellCache(ctx context.Context) {
	url := config.Get("REDIS_URL", "")
	if url == "" {
		return
	}

	rdb, err := cache.NewRedisClient(ctx, url)
	if err != nil {
		log.Printf("skip well cache invalidation: %v", err)
		return
	}
	defer rdb.Close()

	if err := cache.NewRedisWellCache(nil, rdb, 0).Invalidate(ctx); err != nil {
		log.Printf("well cache invalidation failed: %v", err)
		return
	}
	log.Println("Well cache invalidated.")
}
