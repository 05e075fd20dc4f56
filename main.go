package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"scheme-details/config"
	"scheme-details/domain"
	httpLayer "scheme-details/http"
	"scheme-details/logger"
	"scheme-details/repository"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "schemed",
	Short:         "Mutual fund scheme details and returns calculator",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		log = logger.New(logger.Config{
			Level:  cfg.Logging.Level,
			Pretty: cfg.Logging.Pretty,
			Output: os.Stderr,
		})
		logger.SetGlobalLogger(log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	projectCmd.Flags().Float64("amount", 0, "monthly instalment (sip) or one-time amount (lumpsum)")
	projectCmd.Flags().Float64("years", 1, "tenure in years")
	projectCmd.Flags().String("mode", string(domain.ModeSIP), "sip or lumpsum")
	_ = projectCmd.MarkFlagRequired("amount")

	chartCmd.Flags().String("scheme", "", "scheme code")
	chartCmd.Flags().String("period", string(domain.Period1Y), "1M, 3M, 6M, 1Y, 3Y or 5Y")
	chartCmd.Flags().Float64("width", 300, "plot width")
	chartCmd.Flags().Float64("height", 200, "plot height")
	_ = chartCmd.MarkFlagRequired("scheme")

	importCmd.Flags().String("file", "", "scheme bundle JSON file")
	_ = importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(serveCmd, projectCmd, chartCmd, importCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// config is not needed to print the version
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "schemed %s (%s)\n", version, commit)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		limiter := httpLayer.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		defer limiter.Stop()

		srv := a.server(limiter)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project the value of a SIP or lump sum investment",
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, _ := cmd.Flags().GetFloat64("amount")
		years, _ := cmd.Flags().GetFloat64("years")
		mode, _ := cmd.Flags().GetString("mode")

		a, err := newApp(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		record, err := a.projection.Calculate(cmd.Context(), domain.InvestmentInput{
			Amount:      amount,
			TenureYears: years,
			Mode:        domain.Mode(mode),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Mode:            %s\n", record.Input.Mode)
		fmt.Fprintf(out, "Expected return: %.2f%% p.a.\n", record.AnnualRate)
		fmt.Fprintf(out, "Total invested:  %.0f\n", record.Result.TotalInvested)
		fmt.Fprintf(out, "Estimated value: %.0f\n", record.Result.EstimatedValue)
		fmt.Fprintf(out, "Total returns:   %.0f (%.2f%%)\n", record.Result.TotalReturns, record.Result.ReturnPercent())
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the windowed NAV chart for a scheme as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		code, _ := cmd.Flags().GetString("scheme")
		rawPeriod, _ := cmd.Flags().GetString("period")
		width, _ := cmd.Flags().GetFloat64("width")
		height, _ := cmd.Flags().GetFloat64("height")

		period, ok := domain.ParsePeriod(rawPeriod)
		if !ok {
			return fmt.Errorf("unknown period %q", rawPeriod)
		}

		a, err := newApp(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		chart, err := a.nav.Chart(cmd.Context(), code, period, width, height)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(chart)
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a scheme bundle into the sqlite store",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if cfg.Storage.Driver != "sqlite" {
			return errors.New("import requires storage.driver=sqlite")
		}

		bundle, err := repository.ReadBundleFile(file)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.Import(cmd.Context(), bundle); err != nil {
			return err
		}
		log.Info().
			Str("scheme", bundle.Scheme.Code).
			Int("nav_samples", len(bundle.Nav)).
			Msg("bundle imported")
		return nil
	},
}
