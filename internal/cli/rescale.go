package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MacroPower/xamlscale/pkg/config"
	"github.com/MacroPower/xamlscale/pkg/prompt"
	"github.com/MacroPower/xamlscale/pkg/scaling"
	"github.com/MacroPower/xamlscale/pkg/walk"
	"github.com/MacroPower/xamlscale/pkg/xaml"
	"github.com/MacroPower/xamlscale/pkg/xamlerrors"
)

type runner struct {
	in   io.Reader
	out  io.Writer
	args *RootArgs
	name string
}

func newRunner(cc *cobra.Command, name string, args *RootArgs) *runner {
	return &runner{
		in:   cc.InOrStdin(),
		out:  cc.OutOrStdout(),
		args: args,
		name: name,
	}
}

// run validates the arguments in the order the usage message lists them, then
// rescales a single file (3 arguments) or a folder (2 arguments).
func (r *runner) run(pArgs []string) error {
	if len(pArgs) < 2 || len(pArgs) > 3 {
		return r.usage(fmt.Errorf("%w: expected 2 or 3 arguments, got %d", xamlerrors.ErrUsage, len(pArgs)))
	}

	if len(pArgs) == 2 {
		folder := pArgs[0]
		if !dirExists(folder) {
			return r.usage(fmt.Errorf("%w: folder %q does not exist", xamlerrors.ErrUsage, folder))
		}

		f, err := r.resolve(pArgs[1])
		if err != nil {
			return err
		}

		return r.runFolder(folder, f)
	}

	f, err := r.resolve(pArgs[2])
	if err != nil {
		return err
	}

	in, out := pArgs[0], pArgs[1]
	if !fileExists(in) {
		return r.usage(fmt.Errorf("%w: file %q does not exist", xamlerrors.ErrUsage, in))
	}

	return r.runFile(in, out, f)
}

func (r *runner) resolve(token string) (scaling.Factor, error) {
	f, err := scaling.Resolve(token)
	if errors.Is(err, xamlerrors.ErrUsage) {
		return 0, r.usage(err)
	}
	if err != nil {
		return 0, err //nolint:wrapcheck // Already describes the token.
	}

	slog.Debug("resolved factor", slog.String("operation", token), slog.String("factor", f.String()))

	return f, nil
}

func (r *runner) usage(err error) error {
	fmt.Fprintln(r.out, Usage(r.name))

	return err
}

func (r *runner) loadConfig() (*config.Config, *xaml.Rescaler, error) {
	c, err := config.Load(r.args.GetConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	cat, err := c.Catalog()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	return c, xaml.NewRescaler(cat), nil
}

func (r *runner) runFile(in, out string, f scaling.Factor) error {
	_, rescaler, err := r.loadConfig()
	if err != nil {
		return err
	}

	r.printProcessing(in, out, f)

	stats, err := rescaler.RescaleFile(in, out, f)
	if err != nil {
		return err //nolint:wrapcheck // Carries the path.
	}

	logStats(out, stats)

	return nil
}

func (r *runner) runFolder(folder string, f scaling.Factor) error {
	c, rescaler, err := r.loadConfig()
	if err != nil {
		return err
	}

	if !r.args.GetYes() {
		ok, err := r.confirm(confirmationMessage(c.Extension))
		if err != nil {
			return fmt.Errorf("confirm: %w", err)
		}

		if !ok {
			fmt.Fprintln(r.out, "Cancelled, no files were modified.")

			return nil
		}
	}

	w := walk.New(rescaler,
		walk.WithExtension(c.Extension),
		walk.WithNotify(func(e any) { r.report(e, f) }),
	)

	res := w.Walk(folder, f)

	fmt.Fprintf(r.out, "Rescaled %d files (%d attributes)", res.Files, res.Stats.Rewritten)
	if res.Failed > 0 || res.FailedDirs > 0 {
		fmt.Fprintf(r.out, ", %d files and %d folders failed", res.Failed, res.FailedDirs)
	}
	fmt.Fprintln(r.out)

	if res.Err != nil {
		return fmt.Errorf("%w: %d files and %d folders failed",
			xamlerrors.ErrPartialFailure, res.Failed, res.FailedDirs)
	}

	return nil
}

func (r *runner) confirm(question string) (bool, error) {
	if prompt.IsTerminal(r.in, r.out) {
		return prompt.ConfirmTTY(r.in, r.out, question) //nolint:wrapcheck // Wrapped by caller.
	}

	return prompt.Confirm(r.in, r.out, question) //nolint:wrapcheck // Wrapped by caller.
}

func (r *runner) report(e any, f scaling.Factor) {
	switch e := e.(type) {
	case walk.EventFileStarted:
		r.printProcessing(e.Path, e.Path, f)

	case walk.EventFileDone:
		if e.Err != nil {
			fmt.Fprintln(r.out, e.Err)

			return
		}

		logStats(e.Path, e.Stats)

	case walk.EventDirFailed:
		fmt.Fprintln(r.out, e.Err)
	}
}

func (r *runner) printProcessing(in, out string, f scaling.Factor) {
	fmt.Fprintf(r.out, "Processing '%s' to '%s' with %s\n", in, out, f)
}

func logStats(path string, s xaml.Stats) {
	slog.Info("rescaled",
		slog.String("path", path),
		slog.Int("positions", s.Positions),
		slog.Int("regions", s.Regions),
		slog.Int("rewritten", s.Rewritten),
		slog.Int("skipped", s.Skipped),
	)
}

func confirmationMessage(ext string) string {
	kind := strings.ToUpper(strings.TrimPrefix(ext, "."))

	return fmt.Sprintf("Folder processing will modify all the %s files in the given path.\n"+
		"Please enter 'yes' to confirm or 'no' to cancel.", kind)
}

func dirExists(path string) bool {
	fi, err := os.Stat(path)

	return err == nil && fi.IsDir()
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)

	return err == nil && !fi.IsDir()
}
