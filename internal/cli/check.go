package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"asyncmock/pkg/result"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	Concurrency int
}

// CheckResult is the outcome of decoding one fixture.
type CheckResult struct {
	Path string
	Err  error
}

type decoder func(fsys fs.FS, name, ext string) error

var decoders = map[string]decoder{
	".json": func(fsys fs.FS, name, ext string) error {
		_, err := result.JSONFile[any](fsys, name, ext)()
		return err
	},
	".yaml": decodeYAML,
	".yml":  decodeYAML,
}

func decodeYAML(fsys fs.FS, name, ext string) error {
	_, err := result.YAMLFile[any](fsys, name, ext)()
	return err
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Decode every JSON and YAML fixture in a directory",
		Long: `Walk a fixture directory and decode every .json, .yaml and .yml file
the way result fixtures are decoded when a mocked call resolves.

The directory defaults to ASYNCMOCK_FIXTURE_DIR.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := rootOpts.Config.FixtureDir
			if len(args) == 1 {
				dir = args[0]
			}
			return runCheck(cmd.Context(), rootOpts, opts, dir, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 0, "fixtures decoded at once (default: background workers)")

	return cmd
}

func runCheck(ctx context.Context, rootOpts *RootOptions, opts *CheckOptions, dir string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = rootOpts.Config.BackgroundWorkers
	}

	log := logrus.NewEntry(rootOpts.Log).WithField("dir", dir)
	log.Debug("checking fixtures")

	results, err := CheckFixtures(ctx, os.DirFS(dir), concurrency)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", dir, err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.WithField("fixture", r.Path).WithError(r.Err).Error("fixture failed to decode")
			fmt.Fprintf(out, "FAIL %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(out, "ok   %s\n", r.Path)
	}
	fmt.Fprintf(out, "%d fixture(s), %d failed\n", len(results), failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d fixtures failed to decode", failed, len(results))
	}
	return nil
}

// CheckFixtures decodes every fixture in fsys, at most concurrency at a time.
// Results are sorted by path. A decoding failure is recorded in its result;
// only walking errors and cancellation are returned.
func CheckFixtures(ctx context.Context, fsys fs.FS, concurrency int) ([]CheckResult, error) {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := decoders[strings.ToLower(path.Ext(p))]; ok {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]CheckResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ext := path.Ext(p)
			decode := decoders[strings.ToLower(ext)]
			results[i] = CheckResult{
				Path: p,
				Err:  decode(fsys, strings.TrimSuffix(p, ext), strings.TrimPrefix(ext, ".")),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
