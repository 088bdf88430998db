package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnocchid/gnocchid/lib/consts"
)

func getVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show application version",
		Long:  "Show the application version and exit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "gnocchid v%s\n", consts.FullVersion())
			return err
		},
	}
}
