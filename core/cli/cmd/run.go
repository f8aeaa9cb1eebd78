package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hyperterse/dataexplorer/core/application/render"
	"github.com/hyperterse/dataexplorer/core/cli/internal"
	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/logger"
	apperrors "github.com/hyperterse/dataexplorer/core/shared/errors"
)

var (
	queryID    string
	queryName  string
	paramPairs []string
	formatName string
)

// runCmd runs a single query and prints its result
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one Data Explorer query and print the result as a Markdown table",
	Example: `  dataexplorer run --host forum.example.com --id 42 -P months_ago=1
  dataexplorer run -f dataexplorer.yaml --query top_users --format json`,
	Args:          cobra.NoArgs,
	RunE:          runQuery,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&queryID, "id", "", "Remote query id")
	runCmd.Flags().StringVarP(&queryName, "query", "q", "", "Name of a query defined in the configuration file")
	runCmd.Flags().StringArrayVarP(&paramPairs, "param", "P", nil, "Query parameter as key=value (repeatable, overrides configured params)")
	runCmd.Flags().StringVar(&formatName, "format", string(render.FormatMarkdown), "Output format: markdown or json")
	runCmd.MarkFlagsMutuallyExclusive("id", "query")
	runCmd.MarkFlagsOneRequired("id", "query")
	addOutputFlags(runCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	log := logger.New("run")

	format, err := render.ParseFormat(formatName)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidInput, err.Error(), nil)
	}
	params, err := internal.ParseParams(paramPairs)
	if err != nil {
		return err
	}

	model, err := loadModel(queryName != "")
	if err != nil {
		return err
	}
	cat, err := newCatalog(model)
	if err != nil {
		return err
	}

	var req domain.RunRequest
	if queryName != "" {
		req, err = cat.Resolve(queryName, params)
		if err != nil {
			return err
		}
	} else {
		req = cat.Adhoc(domain.QueryID(queryID), params)
	}

	ctx := cmd.Context()
	report, err := newQueryService().Run(ctx, req)
	pushMetrics(ctx)
	if err != nil {
		return err
	}
	log.Debugf("Query returned %d row(s)", len(report.Result.Rows))

	content := report.Table
	if format == render.FormatJSON {
		content, err = render.RenderJSON(report.Result)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrCodeRenderFailed, "failed to render result", err)
		}
	}
	return writeOutput(cmd, content)
}
