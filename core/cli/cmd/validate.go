package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/logger"
	"github.com/hyperterse/dataexplorer/core/parser"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:           "validate [path]",
	Short:         "Validate a dataexplorer configuration file",
	RunE:          validateConfig,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	log := logger.New("validate")
	if err := resolveValidatePathArg(args); err != nil {
		return err
	}

	loadFrom := configFile
	if source != "" {
		loadFrom = "source"
	}

	model, err := loadModel(true)
	if err != nil {
		var validationErrs *parser.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.PrintValidationErrors(validationErrs.Errors)
		}
		return log.Errorf("validation failed: %w", err)
	}

	printValidationSummary(log, loadFrom, model)
	log.Successf("Configuration is valid: %s", loadFrom)
	return nil
}

func resolveValidatePathArg(args []string) error {
	log := logger.New("validate")
	if len(args) == 0 {
		return nil
	}

	if source != "" {
		return log.Errorf("cannot combine path argument with --source")
	}
	if configFile != "" {
		return log.Errorf("cannot combine path argument with --file")
	}

	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return log.Errorf("invalid validate path %q: %w", target, err)
	}
	if info.IsDir() {
		configFile = filepath.Join(target, DefaultConfigFile)
		return nil
	}
	configFile = target
	return nil
}

func printValidationSummary(log *logger.Logger, loadFrom string, model *domain.Model) {
	log.Info("Validation report:")
	log.Infof("  config: %s", loadFrom)
	if model.Host != "" {
		log.Infof("  host: %s", model.Host)
	}
	log.Infof("  queries (%d):", len(model.Queries))
	if len(model.Queries) == 0 {
		log.Info("    - none")
	}
	for _, q := range model.Queries {
		log.Infof("    - %s: id %s, %d param(s)", q.Name, q.ID, len(q.Params))
	}
}
