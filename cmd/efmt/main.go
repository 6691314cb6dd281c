// cmd/efmt is the CLI driver (C13), per SPEC_FULL.md §4.14. Grounded on
// the teacher's cmd/msg/main.go command shape (a banner built once at
// startup, subcommand dispatch, process exit codes carrying outcome),
// rebuilt on a cobra command tree per the ambient-stack expansion.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/daios-ai/efmt"
	"github.com/daios-ai/efmt/internal/config"
)

var (
	fs afero.Fs = afero.NewOsFs()

	flagWrite  bool
	flagList   bool
	flagDiff   bool
	flagWidth  int
	flagConfig string
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Error("efmt failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "efmt [paths...]",
		Short: "format source files with the Strictly Pretty layout engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(logger, args)
		},
	}
	cmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "write result to source file instead of stdout")
	cmd.Flags().BoolVarP(&flagList, "list", "l", false, "list files whose formatting differs from efmt's")
	cmd.Flags().BoolVarP(&flagDiff, "diff", "d", false, "print changed files' formatted output under a ---/+++ header instead of rewriting them")
	cmd.Flags().IntVar(&flagWidth, "width", 0, "override MAX_WIDTH (0 = use config/default)")
	cmd.Flags().StringVar(&flagConfig, "config", "", "path to .efmt.yaml (default: discovered upward from cwd)")
	return cmd
}

func runFormat(logger *zap.Logger, paths []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	width := cfg.Width
	if flagWidth > 0 {
		width = flagWidth
	}

	files, err := expandPaths(paths, cfg)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	var changed []string
	var g errgroup.Group

	for _, f := range files {
		f := f
		g.Go(func() error {
			return formatOne(logger, f, width, &mu, &changed)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if flagList {
		for _, f := range changed {
			fmt.Println(f)
		}
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "getting working directory")
	}
	return config.Discover(cwd)
}

func expandPaths(paths []string, cfg *config.Config) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	var out []string
	for _, p := range paths {
		isDir, err := afero.IsDir(fs, p)
		if err != nil || !isDir {
			// p is probably a file or a glob pattern, not a directory.
			matches, gerr := doublestar.FilepathGlob(p)
			if gerr == nil && len(matches) > 0 {
				out = append(out, matches...)
				continue
			}
			out = append(out, p)
			continue
		}
		err = afero.Walk(fs, p, func(path string, fi os.FileInfo, err error) error {
			if err != nil || fi.IsDir() {
				return err
			}
			rel, rerr := filepath.Rel(p, path)
			if rerr != nil {
				rel = path
			}
			if cfg.Matches(rel) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", p)
		}
	}
	return out, nil
}

func formatOne(logger *zap.Logger, path string, width int, mu *sync.Mutex, changed *[]string) error {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	out, err := efmt.FormatCodeWidth(src, path, width)
	if err != nil {
		var safety *efmt.SafetyError
		if ok := errors.As(err, &safety); ok {
			logger.Error("safety gate rejected formatting", zap.String("path", path), zap.Error(err))
		} else {
			logger.Error("format failed", zap.String("path", path), zap.Error(err))
		}
		return err
	}

	if bytes.Equal(src, out) {
		logger.Debug("unchanged", zap.String("path", path))
		return nil
	}

	mu.Lock()
	*changed = append(*changed, path)
	mu.Unlock()

	switch {
	case flagDiff:
		fmt.Printf("--- %s\n+++ %s (formatted)\n", path, path)
		fmt.Print(string(out))
	case flagWrite:
		if err := afero.WriteFile(fs, path, out, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
		logger.Info("formatted", zap.String("path", path))
	case flagList:
		// handled by the caller once every goroutine has reported in.
	default:
		fmt.Print(string(out))
	}
	return nil
}
