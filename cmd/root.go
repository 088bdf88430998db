// Package cmd implements the gnocchid command line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gnocchid/gnocchid/lib/consts"
)

// BannerColor is the color the banner is printed with.
var BannerColor = color.New(color.FgCyan) //nolint:gochecknoglobals

// rootCommand keeps all state needed by the main gnocchid command.
type rootCommand struct {
	cmd    *cobra.Command
	logger *logrus.Logger

	fs  afero.Fs
	env map[string]string

	verbose        bool
	logFormat      string
	noColor        bool
	configFilePath string
}

func newRootCommand() *rootCommand {
	c := &rootCommand{
		logger: &logrus.Logger{
			Out:       os.Stderr,
			Formatter: new(logrus.TextFormatter),
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.InfoLevel,
		},
		fs:  afero.NewOsFs(),
		env: buildEnvMap(os.Environ()),
	}

	// the base command when called without any subcommands.
	c.cmd = &cobra.Command{
		Use:               "gnocchid",
		Short:             "a metering-sample dispatcher for Gnocchi",
		Long:              BannerColor.Sprintf("\n%s", consts.Banner()),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.persistentPreRunE,
	}

	flags := c.cmd.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&c.logFormat, "log-format", "text", "log output format, 'text' or 'json'")
	flags.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	flags.StringVarP(&c.configFilePath, "config", "c", "",
		"configuration file (JSON or YAML), also settable via $GNOCCHID_CONFIG")
	flags.String("address", "", "address the REST API listens on")
	flags.String("store-url", "", "base URL of the time-series store")
	flags.String("policy", "", "policy applied to metric streams created by the dispatcher")

	c.cmd.AddCommand(
		getRunCmd(c),
		getPushCmd(c),
		getVersionCmd(),
	)
	return c
}

func (c *rootCommand) persistentPreRunE(*cobra.Command, []string) error {
	return c.setupLogging()
}

func (c *rootCommand) setupLogging() error {
	if c.verbose {
		c.logger.SetLevel(logrus.DebugLevel)
	}

	stderrTTY := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	switch c.logFormat {
	case "json":
		c.logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		c.logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   stderrTTY && !c.noColor,
			DisableColors: c.noColor,
		})
	default:
		return fmt.Errorf("unknown log format '%s'", c.logFormat)
	}

	if c.noColor {
		c.logger.SetOutput(colorable.NewNonColorable(os.Stderr))
	} else {
		c.logger.SetOutput(colorable.NewColorableStderr())
	}
	return nil
}

// buildEnvMap converts a KEY=VALUE list, as returned by os.Environ(), to a map.
func buildEnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

// Execute adds all child commands to the root command, sets flags
// appropriately and runs it. This is called by main.main().
func Execute() {
	c := newRootCommand()
	if err := c.cmd.Execute(); err != nil {
		c.logger.Error(err)
		os.Exit(1)
	}
}
