package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/revcycle/revcycle/internal/config"
	"github.com/revcycle/revcycle/internal/domain/claims"
	"github.com/revcycle/revcycle/internal/domain/denials"
	"github.com/revcycle/revcycle/internal/domain/organization"
	"github.com/revcycle/revcycle/internal/domain/patients"
	"github.com/revcycle/revcycle/internal/domain/payments"
	"github.com/revcycle/revcycle/internal/domain/worklist"
	"github.com/revcycle/revcycle/internal/platform/db"
	"github.com/revcycle/revcycle/internal/platform/middleware"
	"github.com/revcycle/revcycle/internal/platform/scheduling"
	"github.com/revcycle/revcycle/internal/sim/lifecycle"
	"github.com/revcycle/revcycle/internal/sim/sampling"
	"github.com/revcycle/revcycle/internal/sim/seeding"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rcm-server",
		Short: "Revenue cycle simulation API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			fmt.Printf("Running migrations on schema: %s\n", schema)

			count, err := migrator.Up(ctx, schema)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("schema", "tenant_default", "Target schema for migrations")
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx, schema)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("Migration status for schema: %s\n", schema)
			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("schema", "tenant_default", "Target schema for migrations")
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Use Atlas CLI for migration rollback: atlas schema apply --dir migrations/")
			return nil
		},
	})

	return cmd
}

// seedCmd runs the full historical seed synchronously from the CLI. The
// inline deferrer drives each organization's continuation chain to
// completion before the command returns.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed historical data for all organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			seeder := seeding.New(seedRepos(pool), cfg.SimSeed, &scheduling.Inline{}, cfg.SeedBatchSize, 0, logger)

			orgs, err := seeder.SeedAll(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d organization(s).\n", len(orgs))

			codes := make(map[uuid.UUID]string, len(orgs))
			for _, org := range orgs {
				codes[org.ID] = org.Code
			}
			progress, err := seeder.Progress(ctx)
			if err != nil {
				return err
			}
			for _, p := range progress {
				fmt.Printf("%-10s phase=%-10s patients=%d/%d claims=%d/%d\n",
					codes[p.OrgID], p.Phase, p.PatientsCreated, p.PatientTarget, p.ClaimsCreated, p.ClaimTarget)
			}
			return nil
		},
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func seedRepos(pool *pgxpool.Pool) seeding.Repos {
	return seeding.Repos{
		Orgs:        organization.NewRepoPG(pool),
		Progress:    organization.NewSeedProgressRepoPG(pool),
		Patients:    patients.NewPatientRepoPG(pool),
		Coverages:   patients.NewCoverageRepoPG(pool),
		Claims:      claims.NewClaimRepoPG(pool),
		LineItems:   claims.NewLineItemRepoPG(pool),
		Diagnoses:   claims.NewDiagnosisRepoPG(pool),
		Denials:     denials.NewDenialRepoPG(pool),
		Appeals:     denials.NewAppealRepoPG(pool),
		Payments:    payments.NewPaymentRepoPG(pool),
		Adjustments: payments.NewAdjustmentRepoPG(pool),
		Tasks:       worklist.NewTaskRepoPG(pool),
	}
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(60 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", "X-Tenant-ID"},
	}))

	// Tenant middleware
	e.Use(db.TenantMiddleware(pool, cfg.DefaultTenant))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Simulation engine. The seeder derives a source per organization chain;
	// the lifecycle engine gets its own, so no rand state crosses goroutines.
	repos := seedRepos(pool)
	runner := scheduling.NewRunner(logger)
	defer runner.Stop()

	seeder := seeding.New(repos, cfg.SimSeed, runner, cfg.SeedBatchSize, cfg.ContinuationDelay(), logger)
	engine := lifecycle.New(lifecycle.Repos{
		Claims:      repos.Claims,
		LineItems:   repos.LineItems,
		Denials:     repos.Denials,
		Appeals:     repos.Appeals,
		Payments:    repos.Payments,
		Adjustments: repos.Adjustments,
		Tasks:       repos.Tasks,
	}, sampling.NewSource(cfg.SimSeed), logger)

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
	simHandler := seeding.NewHandler(seeder, engine, cfg.LifecycleSweepLimit)
	simHandler.RegisterRoutes(apiV1.Group("/sim"))

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	runner.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
	return nil
}
