package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperterse/dataexplorer/core/infrastructure/metrics"
	"github.com/hyperterse/dataexplorer/core/logger"
)

const pushgatewayJob = "dataexplorer"

var (
	outputFile  string
	pushgateway string
)

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the document to a file instead of stdout")
	cmd.Flags().StringVar(&pushgateway, "pushgateway", "", "Push run metrics to this Prometheus Pushgateway URL when done")
}

// writeOutput writes the rendered document to --output, or to the command's
// stdout. Logs go to stderr so stdout only carries the document.
func writeOutput(cmd *cobra.Command, content string) error {
	if outputFile == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}

	log := logger.New("output")
	if err := os.WriteFile(outputFile, []byte(content), 0o644); err != nil {
		return log.Errorf("failed to write %s: %w", outputFile, err)
	}
	log.Infof("Wrote %s", outputFile)
	return nil
}

// pushMetrics sends the collected metrics to --pushgateway. A failed push
// does not fail the run.
func pushMetrics(ctx context.Context) {
	if pushgateway == "" {
		return
	}
	log := logger.New("metrics")
	if err := metrics.Push(ctx, pushgateway, pushgatewayJob); err != nil {
		log.Warnf("Failed to push metrics to %s: %v", pushgateway, err)
		return
	}
	log.Debugf("Pushed metrics to %s", pushgateway)
}
