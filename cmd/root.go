package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/wcfetch/config"
	"github.com/s0up4200/wcfetch/metrics"
	"github.com/s0up4200/wcfetch/woocommerce"
)

var (
	cfgFile  string
	envFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *woocommerce.Client
	recorder *metrics.Recorder
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wcfetch",
	Short: "Fetch products from a WooCommerce store over the signed REST API",
	Long: `wcfetch lists products from a WooCommerce store using the REST API
(wp-json/wc/v3) with one-legged OAuth 1.0 HMAC-SHA1 request signing.

Credentials come from a config file, a .env file or WCFETCH_* environment
variables, e.g. WCFETCH_STORE_CONSUMER_SECRET.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	writeMetrics()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file (default is ./.env)")
}

// initializeApp loads the configuration and builds the WooCommerce client
func initializeApp(cmd *cobra.Command, args []string) error {
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, isatty.IsTerminal(os.Stderr.Fd()))
	logger.Debug().Str("config", cfg.Redacted()).Msg("Configuration loaded")

	recorder = metrics.NewRecorder()

	opts := append(cfg.ClientOptions(), woocommerce.WithObserver(recorder))
	client, err = woocommerce.NewClient(cfg.Credentials(), logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create WooCommerce client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger. Colour is used only when
// enabled in config and stderr is a terminal.
func setupLogger(cfg config.LoggingConfig, terminal bool) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if strings.EqualFold(cfg.Format, "json") {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !terminal,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// writeMetrics exports the run's metrics when a textfile is configured.
// Failures are logged, the command's own result stands.
func writeMetrics() {
	if recorder == nil || cfg == nil || cfg.Metrics.Textfile == "" {
		return
	}
	if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn().Err(err).Msg("Failed to write metrics")
		return
	}
	logger.Debug().Str("path", cfg.Metrics.Textfile).Msg("Wrote metrics textfile")
}
