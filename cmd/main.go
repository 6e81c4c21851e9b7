package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/senyabanana/procurement-service/internal/db"
	"github.com/senyabanana/procurement-service/internal/extractor"
	"github.com/senyabanana/procurement-service/internal/handlers"
	"github.com/senyabanana/procurement-service/internal/logger"
	"github.com/senyabanana/procurement-service/internal/metrics"
	"github.com/senyabanana/procurement-service/internal/router"
	"github.com/senyabanana/procurement-service/internal/router/config"
	"github.com/senyabanana/procurement-service/internal/seed"
	"github.com/senyabanana/procurement-service/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const serviceName = "procurement-service"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Procurement backend: RFP drafting, vendor proposals and comparison",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config-path", ".", "Directory with app.env")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load demo vendors, RFPs and proposals into an empty store",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSeed(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   "extract [text]",
			Short: "Print the RFP draft extracted from text (arguments or stdin)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runExtract(cmd.InOrStdin(), cmd.OutOrStdout(), args)
			},
		},
	)
	return cmd
}

func setup(opts *options) (config.Config, *logger.Logger, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("cannot load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	logg := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
		Output:      os.Stdout,
	})
	return cfg, logg, nil
}

func runServe(ctx context.Context, opts *options) error {
	cfg, logg, err := setup(opts)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.SeedDemoData {
		if _, err = seed.Load(ctx, store.seedStore(), logg); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	rfpService := services.NewRFPService(store.RFPs, store.Vendors, logg, m)
	vendorService := services.NewVendorService(store.Vendors, logg)
	proposalService := services.NewProposalService(store.Proposals, store.RFPs, store.Vendors, logg, m)

	routes := router.InitRoutes(router.Handlers{
		RFPs:      handlers.NewRFPHandler(rfpService, logg, cfg.RequestTimeout),
		Vendors:   handlers.NewVendorHandler(vendorService, logg, cfg.RequestTimeout),
		Proposals: handlers.NewProposalHandler(proposalService, logg, cfg.RequestTimeout),
	}, logg, m, reg)

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"addr":    cfg.ServerAddress,
			"storage": cfg.StorageDriver,
		}), "server.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "server.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runMigrate(ctx context.Context, opts *options) error {
	cfg, logg, err := setup(opts)
	if err != nil {
		return err
	}
	if cfg.StorageDriver == config.StorageSQLite {
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return err
		}
		logg.Info(logg.WithField(ctx, "path", cfg.SQLitePath), "db.migrated")
		return conn.Close()
	}
	if err = db.RunMigrations(cfg.MigrationURL, postgresDSN(cfg)); err != nil {
		return err
	}
	logg.Info(ctx, "db.migrated")
	return nil
}

func runSeed(ctx context.Context, opts *options) error {
	cfg, logg, err := setup(opts)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = seed.Load(ctx, store.seedStore(), logg)
	return err
}

func runExtract(in io.Reader, out io.Writer, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		raw, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(raw)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("no text to extract from")
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(extractor.Extract(text))
}
