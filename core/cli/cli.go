package cli

import (
	"github.com/hyperterse/dataexplorer/core/cli/cmd"
	"github.com/hyperterse/dataexplorer/core/logger"
	apperrors "github.com/hyperterse/dataexplorer/core/shared/errors"
)

// Execute runs the CLI and returns the process exit code. Errors are logged
// once here, under the tag of the component that produced them.
func Execute() int {
	if err := cmd.Execute(); err != nil {
		tag := logger.ErrorTag(err)
		if tag == "" {
			tag = "cli"
		}
		logger.New(tag).Error(err.Error())
		return apperrors.ExitCode(err)
	}
	return 0
}
