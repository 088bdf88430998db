package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gnocchid/gnocchid/dispatch"
	"github.com/gnocchid/gnocchid/gnocchiapi"
	"github.com/gnocchid/gnocchid/metering"
	"github.com/gnocchid/gnocchid/resources"
)

func getPushCmd(c *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "push <file>",
		Short: "Dispatch a single batch of samples from a file",
		Long:  "Read a JSON sample batch from a file ('-' for stdin), dispatch it once and print the summary.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			data, err := readSource(c.fs, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			samples, err := metering.ParseBatch(data)
			if err != nil {
				return err
			}

			client := gnocchiapi.NewClient(c.logger, conf.Store)
			dispatcher := dispatch.New(c.logger, client, resources.DefaultRegistry, nil)
			summary := dispatcher.Dispatch(cmd.Context(), samples)

			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(out)); err != nil {
				return err
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d work units failed", summary.Failed, summary.Units)
			}
			return nil
		},
	}
}

func readSource(fs afero.Fs, src string, stdin io.Reader) ([]byte, error) {
	if src == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		return io.ReadAll(stdin)
	}
	return afero.ReadFile(fs, src)
}
