package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"asyncmock/pkg/config"
)

// RootOptions holds global flags and the state they produce.
type RootOptions struct {
	Verbose  bool
	EnvFiles []string

	Config *config.Config
	Log    *logrus.Logger
}

// NewRootCommand creates the asyncmock command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "asyncmock",
		Short: "Tools for asynchronous mock result fixtures",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.EnvFiles...)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			opts.Config = cfg
			opts.Log = cfg.NewLoggerTo(cmd.ErrOrStderr())
			if opts.Verbose {
				opts.Log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", nil, "env files to load before reading ASYNCMOCK_ variables")

	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}
