// Package main provides the CLI entry point for xlpkg-go.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg"
)

// app holds the flags shared by every subcommand.
type app struct {
	logLevel string
	logger   *logrus.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logrus.New()}
	root := &cobra.Command{
		Use:   "xlpkg",
		Short: "Inspect and repack spreadsheet packages",
		Long: `xlpkg reads .xlsx, .xlsm, .xltx and .xltm packages: it walks the
manifest and relationship graph, loads the workbook and its sheets and
prints a JSON summary.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger.SetOutput(cmd.ErrOrStderr())
			level := a.logLevel
			if !cmd.Flags().Changed("log-level") {
				if env, ok := os.LookupEnv(xlpkg.EnvLogLevel); ok {
					level = env
				}
			}
			lvl, err := logrus.ParseLevel(level)
			if err != nil {
				return err
			}
			a.logger.SetLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		a.inspectCmd(),
		a.partsCmd(),
		a.volatileCmd(),
		a.repackCmd(),
	)
	return root
}

// options merges the XLPKG_* environment with the shared logger.
func (a *app) options() (xlpkg.Options, error) {
	opts, err := xlpkg.OptionsFromEnvironment()
	if err != nil {
		return xlpkg.Options{}, err
	}
	opts.Logger = a.logger
	return opts, nil
}
