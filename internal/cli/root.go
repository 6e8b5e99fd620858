package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MacroPower/xamlscale/internal/version"
	"github.com/MacroPower/xamlscale/pkg/log"
	"github.com/MacroPower/xamlscale/pkg/scaling"
)

var ErrLogHandlerFailed = errors.New("log handler failed")

// Usage returns the usage message of a command called name.
func Usage(name string) string {
	ops := "(" + strings.Join(scaling.Operations(), "|") + ")=<scaling>"

	return fmt.Sprintf(`Usage:
    %[1]s <input_xaml_file_path> <output_xaml_file_path> %[2]s
or:
    %[1]s <folder_path> %[2]s`, name, ops)
}

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name + " <input_file> <output_file> <operation>=<scaling> | <folder> <operation>=<scaling>",
		Short:         shortDesc,
		Long:          longDesc + "\n" + Usage(name) + "\n",
		Example:       example(name),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
		Args:          cobra.ArbitraryArgs,
		RunE: func(cc *cobra.Command, pArgs []string) error {
			return newRunner(cc, name, args).run(pArgs)
		},
	}

	cmd.PersistentFlags().StringVar(args.logLevel, "log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(args.logFormat, "log_format", "text", "Set the log format (text, logfmt, json)")

	cmd.PersistentFlags().StringVarP(args.config, "config", "c", "", "Configuration file extending the element catalog")
	must(cmd.MarkPersistentFlagFilename("config", "yaml", "yml"))

	cmd.PersistentFlags().BoolVarP(args.yes, "yes", "y", false, "Do not ask for confirmation before rewriting a folder in place")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		h, err := log.CreateHandler(cc.ErrOrStderr(), args.GetLogLevel(), args.GetLogFormat())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		slog.Debug("ready to go")

		return nil
	}

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewSchemaCmd())

	for _, sub := range cmd.Commands() {
		shadowPaths(sub, name, args)
	}

	return cmd
}

// shadowPaths lets a folder or file named like the subcommand sub be rescaled:
// when sub is called with positional arguments, its name is taken as the
// first path and the root command runs instead.
func shadowPaths(sub *cobra.Command, name string, args *RootArgs) {
	runE := sub.RunE

	sub.Args = cobra.ArbitraryArgs
	sub.RunE = func(cc *cobra.Command, pArgs []string) error {
		if len(pArgs) == 0 {
			return runE(cc, pArgs)
		}

		slog.Debug("subcommand called with arguments, treating its name as a path",
			slog.String("command", sub.Name()),
		)

		return newRunner(cc, name, args).run(append([]string{sub.Name()}, pArgs...))
	}
}

func example(name string) string {
	return fmt.Sprintf(`  # Convert a workflow recorded at 150%% to 100%%
  %[1]s Main.xaml Main.100.xaml normalize_from=150

  # Convert a workflow recorded at 100%% for playback at 125%%
  %[1]s Main.xaml Main.125.xaml denormalize_to=125

  # Rewrite every workflow of a project in place
  %[1]s ./MyProject normalize_from=200`, name)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
