package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hyperterse/dataexplorer/core/application/render"
	"github.com/hyperterse/dataexplorer/core/application/services"
	"github.com/hyperterse/dataexplorer/core/logger"
	apperrors "github.com/hyperterse/dataexplorer/core/shared/errors"
)

var (
	onlyQueries []string
	concurrency int
)

// reportCmd runs every configured query into one Markdown document
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the configured queries and write one Markdown document",
	Example: `  dataexplorer report -f dataexplorer.yaml -o report.md
  dataexplorer report --only top_users,signups`,
	Args:          cobra.NoArgs,
	RunE:          runReport,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringSliceVar(&onlyQueries, "only", nil, "Run only these configured queries (comma-separated)")
	reportCmd.Flags().IntVar(&concurrency, "concurrency", services.DefaultConcurrency, "Maximum number of queries running at once")
	addOutputFlags(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logger.New("report")

	model, err := loadModel(true)
	if err != nil {
		return err
	}
	cat, err := newCatalog(model)
	if err != nil {
		return err
	}

	reqs, err := cat.ResolveAll(onlyQueries)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeConfigError, "no queries configured", nil)
	}
	log.Infof("Running %d query definition(s) against %s", len(reqs), cat.Hostname())

	ctx := cmd.Context()
	reports, err := newQueryService().RunAll(ctx, reqs, concurrency)
	pushMetrics(ctx)
	if err != nil {
		return err
	}

	return writeOutput(cmd, render.RenderDocument(render.SectionsFromReports(reports)))
}
