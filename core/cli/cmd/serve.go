package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hyperterse/dataexplorer/core/cli/internal"
	httptransport "github.com/hyperterse/dataexplorer/core/infrastructure/transport/http"
	"github.com/hyperterse/dataexplorer/core/logger"
	"github.com/hyperterse/dataexplorer/core/runtime"
	apperrors "github.com/hyperterse/dataexplorer/core/shared/errors"
)

var (
	port           string
	watch          bool
	listenHost     string
	allowedOrigins []string
)

// serveCmd exposes the configured queries over HTTP
var serveCmd = &cobra.Command{
	Use:           "serve",
	Short:         "Serve the configured queries over HTTP",
	Args:          cobra.NoArgs,
	RunE:          runServer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Server port (overrides config file and PORT env var)")
	serveCmd.Flags().BoolVar(&watch, "watch", false, "Reload the configuration file when it changes")
	serveCmd.Flags().StringVar(&listenHost, "listen", httptransport.DefaultHost, "Interface to listen on; every route runs queries with the admin API key, so widen with care")
	serveCmd.Flags().StringSliceVar(&allowedOrigins, "allowed-origins", nil, "Browser origins allowed to call the server (comma-separated); none by default")
}

func runServer(cmd *cobra.Command, args []string) error {
	log := logger.New("serve")

	model, err := loadModel(true)
	if err != nil {
		return err
	}
	if watch && configFile == "" {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "--watch requires a configuration file (--file)", nil)
	}

	rt, err := runtime.NewRuntime(
		model,
		newQueryService(),
		internal.ResolvePort(port, model),
		runtime.WithCatalogFactory(newCatalog),
		runtime.WithListenHost(listenHost),
		runtime.WithAllowedOrigins(allowedOrigins),
	)
	if err != nil {
		return err
	}
	if listenHost != httptransport.DefaultHost {
		log.Warnf("Listening on %s; anyone who can reach it can run the configured queries", listenHost)
	}
	log.Infof("Runtime initialized")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rt.StartAsync(); err != nil {
		return err
	}

	if watch {
		path := configFile
		go func() {
			err := runtime.WatchFile(ctx, path, runtime.DefaultDebounce, func() {
				next, err := internal.LoadConfig(path)
				if err != nil {
					log.PrintError("Reload skipped", err)
					return
				}
				if err := rt.ReloadModel(next); err != nil {
					log.PrintError("Reload failed", err)
				}
			})
			if err != nil {
				log.PrintError("File watcher stopped", err)
			}
		}()
	}

	<-ctx.Done()
	log.Infof("Shutting down")
	return rt.Stop()
}
