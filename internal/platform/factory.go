package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fscs/prototool/internal/config"
	"github.com/fscs/prototool/pkg/adapters/clipboard"
	"github.com/fscs/prototool/pkg/adapters/fs"
	"github.com/fscs/prototool/pkg/adapters/pad"
	"github.com/fscs/prototool/pkg/api"
	"github.com/fscs/prototool/pkg/protokoll"
	"github.com/fscs/prototool/pkg/render"
)

// New wires a generator from the configuration. Components injected through options are
// used as given; everything else is built from cfg.
func New(cfg config.Config, opts ...Option) (*protokoll.Generator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source := o.source
	if source == nil {
		client, err := api.NewClient(cfg.EndpointURL, o.httpClient, logger)
		if err != nil {
			return nil, err
		}
		source = client
	}

	repo := o.repository
	if repo == nil {
		store, err := openStore(cfg, o, logger)
		if err != nil {
			return nil, err
		}
		repo = store
	}

	padClient := o.pad
	if padClient == nil {
		p, err := pad.New(
			pad.WithURLTemplate(cfg.PadURLTemplate),
			pad.WithHTTPClient(o.httpClient),
			pad.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		padClient = p
	}

	cb := o.clipboard
	if cb == nil {
		cb = clipboard.New(clipboard.WithLogger(logger))
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(render.WithLocation(loc), render.WithTemplateFile(cfg.TemplatePath))
	if err != nil {
		return nil, err
	}

	return protokoll.New(source, repo, renderer,
		protokoll.WithClipboard(cb),
		protokoll.WithPad(padClient),
		protokoll.WithSelector(o.selector),
		protokoll.WithPolicy(cfg.Policy()),
		protokoll.WithRole(cfg.Role),
		protokoll.WithLogger(logger),
	)
}

// OpenStore returns the filesystem store at <site-root>/<content_dir>/<lang>.
func OpenStore(cfg config.Config, opts ...Option) (*fs.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	return openStore(cfg, o, logger)
}

func openStore(cfg config.Config, o *options, logger *slog.Logger) (*fs.Store, error) {
	if filepath.IsAbs(cfg.ContentDir) {
		return fs.NewStore(filepath.Join(cfg.ContentDir, cfg.Lang), logger), nil
	}

	start := o.workDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("unable to determine working directory: %w", err)
		}
		start = wd
	}

	root, err := FindSiteRoot(start)
	if errors.Is(err, ErrRootNotFound) {
		logger.Debug("no site root found, using working directory", "dir", start)
		root, err = filepath.Abs(start)
	}
	if err != nil {
		return nil, err
	}

	return fs.NewStore(filepath.Join(root, cfg.ContentDir, cfg.Lang), logger), nil
}
