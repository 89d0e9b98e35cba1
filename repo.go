package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/config"
)

// app is the environment a subcommand runs in.
type app struct {
	fs     afero.Fs
	cfg    *config.Config
	log    zerolog.Logger
	stdout io.Writer
	stdin  io.Reader
}

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	root     *string
	logLevel *string
}

func addCommonFlags(fs *pflag.FlagSet) commonFlags {
	return commonFlags{
		root:     fs.String("root", "", "Project root (default: nearest directory with package.json)"),
		logLevel: fs.String("log-level", "", "Log level: debug, info, warn, error (default from config)"),
	}
}

// newApp resolves the project root and config and builds the logger.
func newApp(flags commonFlags) (*app, error) {
	fsys := afero.NewOsFs()
	root := *flags.root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = projectRoot(fsys, cwd)
	}

	cfg, err := (&config.Loader{Fs: fsys}).Load(root)
	if err != nil {
		return nil, err
	}
	if *flags.logLevel != "" {
		cfg.LogLevel = *flags.logLevel
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	logger := newLogger(os.Stderr, level)
	logger.Debug().Str("root", root).Msg("project root")
	return &app{
		fs:     fsys,
		cfg:    cfg,
		log:    logger,
		stdout: os.Stdout,
		stdin:  os.Stdin,
	}, nil
}

// projectRoot walks up from dir to the nearest directory holding a
// package.json. It returns dir itself when there is none.
func projectRoot(fsys afero.Fs, dir string) string {
	for cur := dir; ; {
		if ok, _ := afero.Exists(fsys, filepath.Join(cur, "package.json")); ok {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return dir
		}
		cur = parent
	}
}

// rel returns path relative to the project root, for messages.
func (a *app) rel(path string) string {
	if r, err := filepath.Rel(a.cfg.Root, path); err == nil {
		return filepath.ToSlash(r)
	}
	return path
}
