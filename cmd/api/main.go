package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/laskin-api/internal/config"
	"github.com/harentsoaR/laskin-api/internal/handlers"
	"github.com/harentsoaR/laskin-api/internal/logging"
	"github.com/harentsoaR/laskin-api/internal/server"
	"github.com/harentsoaR/laskin-api/internal/services"
	"github.com/harentsoaR/laskin-api/internal/store"
	"github.com/harentsoaR/laskin-api/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "laskin-api",
		Short:        "Laskin clinic management API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "roles",
		Short: "Print the built-in role templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			order, templates := store.DefaultRoleTemplates()
			out := cmd.OutOrStdout()
			for _, rt := range order {
				t := templates[rt]
				fmt.Fprintf(out, "%s: %s\n", rt, t.Description)
				flags := t.Permissions.Flatten()
				names := make([]string, 0, len(flags))
				for k := range flags {
					names = append(names, k)
				}
				sort.Strings(names)
				for _, k := range names {
					fmt.Fprintf(out, "  %-52s %t\n", k, flags[k])
				}
			}
			return nil
		},
	})
	return root
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	st, err := store.NewSeeded(utils.PasswordHasher(cfg.BcryptCost))
	if err != nil {
		return fmt.Errorf("seed store: %w", err)
	}

	sessions, closeSessions, err := openSessionStore(parent, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSessions()

	notifications := services.NewNotificationService(cfg.SMSAPIURL, cfg.TextbeltAPIKey, logger)
	alerts := services.NewAlertEngine(st, logger)

	h := &handlers.Handler{
		Auth:         services.NewAuthService(st, sessions, cfg.JWTSecret, cfg.SessionTTL, logger),
		Roles:        services.NewRoleService(st, logger),
		Alerts:       alerts,
		Patients:     services.NewPatientService(st, alerts, logger, nil),
		Treatments:   services.NewTreatmentService(st, alerts, notifications, logger, nil),
		Appointments: services.NewAppointmentService(st),
		Clinic:       services.NewClinicService(st, logger),
		Dashboard:    services.NewDashboardService(st, alerts),
		Logger:       logger,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(h, cfg.CORSOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("sessions", cfg.SessionBackend).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	notifications.Wait()
	return nil
}

func openSessionStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (services.SessionStore, func(), error) {
	if cfg.SessionBackend != config.SessionBackendMongo {
		return services.NewMemorySessionStore(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	sessions := services.NewMongoSessionStore(client.Database(cfg.MongoDatabase))
	if err := sessions.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("session indexes: %w", err)
	}
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	return sessions, func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("disconnect MongoDB")
		}
	}, nil
}
