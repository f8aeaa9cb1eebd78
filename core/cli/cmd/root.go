package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hyperterse/dataexplorer/core/application/catalog"
	"github.com/hyperterse/dataexplorer/core/application/services"
	"github.com/hyperterse/dataexplorer/core/cli/internal"
	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/infrastructure/discourse"
	"github.com/hyperterse/dataexplorer/core/logger"
	"github.com/hyperterse/dataexplorer/core/observability"
	apperrors "github.com/hyperterse/dataexplorer/core/shared/errors"
)

// version stores the version string, set via SetVersion()
var version = "dev"

// SetVersion sets the version string (called from main.init())
func SetVersion(v string) {
	version = v
}

// GetVersion returns the current version string
func GetVersion() string {
	return version
}

// DefaultConfigFile is read when neither --file nor --source is given and it exists
const DefaultConfigFile = "dataexplorer.yaml"

var (
	configFile  string
	source      string
	host        string
	apiKey      string
	logLevel    int
	verbose     bool
	logTags     string
	logFile     bool
	showVersion bool

	providers *observability.Providers
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:               "dataexplorer",
	Short:             "dataexplorer\nRun Discourse Data Explorer queries and render the results as Markdown",
	SilenceUsage:      true,
	SilenceErrors:     true, // Errors are logged once by cli.Execute
	PersistentPreRunE: setup,
}

// completionCmd generates shell completions and is hidden from help
var completionCmd = &cobra.Command{
	Use:          "completion [bash|zsh|fish|powershell]",
	Short:        "Generate shell completion script",
	Hidden:       true,
	ValidArgs:    []string{"bash", "zsh", "fish", "powershell"},
	Args:         cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	SilenceUsage: true,
	// Completion output must not be mixed with setup logs
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(out)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletion(out)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer shutdownObservability()
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(completionCmd)
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Print the installed version and exit")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "file", "f", "", "Path to the YAML configuration file (default: ./"+DefaultConfigFile+" when present)")
	flags.StringVarP(&source, "source", "s", "", "YAML configuration as a string (alternative to --file)")
	flags.StringVar(&host, "host", "", "Forum hostname without scheme (overrides DISCOURSE_HOST and config file)")
	flags.StringVar(&apiKey, "api-key", "", "Admin API key (overrides DISCOURSE_API_KEY, keyring and config file)")
	flags.IntVar(&logLevel, "log-level", 0, "Log level: 1=ERROR, 2=WARN, 3=INFO, 4=DEBUG (overrides config file)")
	flags.BoolVar(&verbose, "verbose", false, "Enable verbose logging, including request and response traces")
	flags.StringVar(&logTags, "log-tags", "", "Filter logs by tags (comma-separated, use -tag to exclude). Overrides DATAEXPLORER_LOG_TAGS env var")
	flags.BoolVar(&logFile, "log-file", false, "Stream logs to a file in "+logger.LogDir())

	// Root command should only print help.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		}
		return cmd.Help()
	}
}

// setup configures logging and observability before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	log := logger.New("main")

	// Set log level early based on CLI flags; it is updated once the
	// configuration is loaded if the file sets one.
	logger.SetLogLevel(internal.ResolveLogLevel(verbose, logLevel, nil))

	tagFilterStr := logTags
	if tagFilterStr == "" {
		tagFilterStr = os.Getenv("DATAEXPLORER_LOG_TAGS")
	}
	if tagFilterStr != "" {
		logger.SetTagFilter(tagFilterStr)
	}

	if logFile {
		filePath, err := logger.SetLogFile()
		if err != nil {
			return log.Errorf("failed to initialize log file: %w", err)
		}
		log.Infof("Log file: %s", filePath)
	}

	// .env next to the config file wins over the working directory
	envDir := ""
	if configFile != "" {
		envDir = filepath.Dir(configFile)
	}
	LoadEnvFiles(envDir)

	p, err := observability.Setup(cmd.Context(), version)
	if err != nil {
		return log.Errorf("failed to initialize observability: %w", err)
	}
	providers = p
	return nil
}

func shutdownObservability() {
	if providers != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.New("observability").Warnf("Shutdown failed: %v", err)
		}
		providers = nil
	}
	_ = logger.CloseLogFile()
}

// loadModel loads the configuration from --source, --file, or the default
// file. Without any of them an empty model is returned unless required is set.
func loadModel(required bool) (*domain.Model, error) {
	log := logger.New("main")

	var (
		model *domain.Model
		err   error
	)
	switch {
	case source != "" && configFile != "":
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "cannot specify both --file and --source flags", nil)
	case source != "":
		model, err = internal.LoadConfigFromString(source)
	case configFile != "":
		model, err = internal.LoadConfig(configFile)
	default:
		if _, statErr := os.Stat(DefaultConfigFile); statErr == nil {
			configFile = DefaultConfigFile
			model, err = internal.LoadConfig(configFile)
		} else if required {
			return nil, apperrors.NewAppError(
				apperrors.ErrCodeConfigError,
				"please provide a file path using -f or --file, or a source string using -s or --source",
				nil,
			)
		} else {
			model = &domain.Model{}
		}
	}
	if err != nil {
		return nil, err
	}

	if logLevel == 0 && !verbose {
		logger.SetLogLevel(internal.ResolveLogLevel(verbose, logLevel, model))
	}
	log.Debugf("Configuration loaded: %d query definition(s)", len(model.Queries))
	for _, q := range model.Queries {
		log.Debugf("  Query: %s (id %s)", q.Name, q.ID)
	}
	return model, nil
}

// newCatalog binds the model to the resolved forum host and API key.
func newCatalog(model *domain.Model) (*catalog.Catalog, error) {
	resolvedHost := internal.ResolveHost(host, model)
	if resolvedHost == "" {
		return nil, apperrors.NewAppError(
			apperrors.ErrCodeConfigError,
			"no forum host configured (use --host, DISCOURSE_HOST or the host key of the configuration)",
			nil,
		)
	}
	key := internal.ResolveAPIKey(apiKey, resolvedHost, model)
	if key == "" {
		logger.New("main").Warnf("No API key configured for %s; the request will be unauthenticated", resolvedHost)
	}
	return catalog.New(model, resolvedHost, key), nil
}

func newQueryService() *services.QueryService {
	return services.NewQueryService(discourse.NewClient())
}

// LoadEnvFiles attempts to load .env files from multiple locations.
// It tries each location in order and stops at the first successful load.
// Priority order:
// 1. From the provided directory (if not empty)
// 2. From the current working directory
// 3. From the directory containing the executable binary
// System environment variables always take precedence over .env file values.
func LoadEnvFiles(fromDir string) {
	envFiles := []string{".env.local", ".env.development", ".env"}

	if fromDir != "" {
		for _, envFile := range envFiles {
			if err := godotenv.Load(filepath.Join(fromDir, envFile)); err == nil {
				return
			}
		}
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			return
		}
	}

	if execPath, err := os.Executable(); err == nil {
		if realPath, err := filepath.EvalSymlinks(execPath); err == nil {
			execPath = realPath
		}
		execDir := filepath.Dir(execPath)
		for _, envFile := range envFiles {
			if err := godotenv.Load(filepath.Join(execDir, envFile)); err == nil {
				return
			}
		}
	}
}
