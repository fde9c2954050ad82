package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rtbhouse-apps/rtbhouse-go-sdk/config"
	"github.com/rtbhouse-apps/rtbhouse-go-sdk/rtbhouse"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *rtbhouse.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rtbcli",
	Short: "Query RTB House advertising reports from the command line",
	Long: `rtbcli talks to the RTB House reporting API: list advertisers and
campaigns, pull RTB and summary statistics, stream conversions and inspect
billing, using credentials from a YAML config file.`,
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if client != nil {
			client.Close()
		}
	},
}

// SetVersion records build metadata shown by --version.
func SetVersion(v, bt string) {
	version, buildTime = v, bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration, logger and API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	auth, err := buildAuth(cfg.RTBHouse)
	if err != nil {
		return err
	}

	opts := []rtbhouse.Option{
		rtbhouse.WithUserAgent("rtbcli/" + version),
	}
	if cfg.RTBHouse.BaseURL != "" {
		opts = append(opts, rtbhouse.WithBaseURL(cfg.RTBHouse.BaseURL))
	}
	if cfg.RTBHouse.TimeoutSeconds > 0 {
		opts = append(opts, rtbhouse.WithTimeout(time.Duration(cfg.RTBHouse.TimeoutSeconds)*time.Second))
	}

	client, err = rtbhouse.NewClient(auth, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	return nil
}

func buildAuth(cfg config.RTBHouseConfig) (rtbhouse.Credentials, error) {
	if cfg.Token != "" {
		auth, err := rtbhouse.NewTokenAuth(cfg.Token)
		if err != nil {
			return nil, err
		}
		return auth, nil
	}
	auth, err := rtbhouse.NewBasicAuth(cfg.Username, cfg.Password)
	if err != nil {
		return nil, err
	}
	return auth, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when stderr is a terminal
	color := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// parseDayFlag parses a --from/--to value given as yyyy-mm-dd.
func parseDayFlag(name, value string) (rtbhouse.Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return rtbhouse.Date{}, fmt.Errorf("invalid --%s date %q, expected yyyy-mm-dd", name, value)
	}
	return rtbhouse.DateOf(t), nil
}
