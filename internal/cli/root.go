package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pantrymcp/pantry-mcp/internal/core"
)

var (
	// Version is set via ldflags during build
	Version = "dev"
	// Commit is set via ldflags during build
	Commit = "unknown"

	// Global flags
	flagJSON       bool
	flagQuiet      bool
	flagPantryID   string
	flagBasketName string
	flagLogLevel   string

	// Resolved once per invocation in loadRuntime.
	cfg    *core.Config
	logger *slog.Logger
)

// rootCmd starts the MCP server when called without a subcommand, which is
// how MCP hosts launch it.
var rootCmd = &cobra.Command{
	Use:   "pantry-mcp",
	Short: "MCP server for Pantry basket storage",
	Long: `pantry-mcp exposes Pantry (getpantry.cloud) baskets as MCP tools:
getBasket, postBasket, putBasket and deleteBasket.

Run without a subcommand (or with "mcp") to serve MCP on stdio. The get,
post, put and delete subcommands perform the same operations from a shell.

Defaults for the pantry id and basket name come from --pantry-id and
--basket-name, falling back to PANTRY_ID and BASKET_NAME.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	PersistentPreRunE:  loadRuntime,
	RunE:               runMCP,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
		os.Exit(getExitCode(err))
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagPantryID, "pantry-id", "", "Default pantry ID (overrides PANTRY_ID)")
	rootCmd.PersistentFlags().StringVar(&flagBasketName, "basket-name", "", "Default basket name (overrides BASKET_NAME)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides PANTRY_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output compact JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress non-essential output")

	// Add all subcommands
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadRuntime builds the process-wide configuration and logger.
// Flags that were given win over the environment, even when empty.
func loadRuntime(cmd *cobra.Command, args []string) error {
	var o core.Overrides
	flags := cmd.Flags()
	if flags.Changed("pantry-id") {
		o.PantryID = &flagPantryID
	}
	if flags.Changed("basket-name") {
		o.BasketName = &flagBasketName
	}
	if flags.Changed("log-level") {
		o.LogLevel = &flagLogLevel
	}

	loaded, err := core.LoadConfig(o)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg = loaded
	logger = setupLogger(cfg.LogLevel)
	return nil
}

// setupLogger writes to stderr; stdout carries MCP frames.
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// GetVersion returns the version string
func GetVersion() string {
	if Commit != "unknown" && len(Commit) >= 7 {
		return fmt.Sprintf("%s (%s)", Version, Commit[:7])
	}
	return Version
}
