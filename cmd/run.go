package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gnocchid/gnocchid/api"
	v1 "github.com/gnocchid/gnocchid/api/v1"
	"github.com/gnocchid/gnocchid/dispatch"
	"github.com/gnocchid/gnocchid/gnocchiapi"
	"github.com/gnocchid/gnocchid/resources"
	"github.com/gnocchid/gnocchid/stats"
)

const shutdownTimeout = 10 * time.Second

func getRunCmd(c *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the dispatch service",
		Long:  "Start the REST API and dispatch inbound sample batches to the time-series store.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			logger := c.logger
			collector := stats.New()
			client := gnocchiapi.NewClient(logger, conf.Store)
			dispatcher := dispatch.New(logger, client, resources.DefaultRegistry, collector)
			cs := &v1.ControlSurface{
				Dispatcher: dispatcher,
				Status:     v1.NewStatusTracker(),
			}
			server := api.GetServer(conf.Address.String, logger, cs, collector.Registry())

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.ListenAndServe()
			}()
			logger.WithFields(logrus.Fields{
				"address": conf.Address.String,
				"store":   conf.Store.URL.String,
				"policy":  conf.Store.Policy.String,
			}).Info("gnocchid is listening")

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}
}
