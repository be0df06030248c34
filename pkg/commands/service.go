package commands

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"

	"tableflip.dev/caddr/pkg/advisor"
	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/logging"
	"tableflip.dev/caddr/pkg/printers"
	"tableflip.dev/caddr/pkg/store"
)

// workspace is everything a command needs to act on the routine.
type workspace struct {
	Config  store.Config
	Log     *log.Logger
	Local   *store.Local
	Remote  *store.Remote
	Service *app.Service
}

func openWorkspace(ctx context.Context) (*workspace, error) {
	printers.ConfigureColor(os.Stdout.Fd())

	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel())

	local, err := store.OpenLocal(cfg)
	if err != nil {
		return nil, err
	}
	w := &workspace{Config: cfg, Log: logger, Local: local}

	opts := app.Options{
		Store:    local,
		User:     cfg.User(),
		Debounce: cfg.Debounce(),
		Advisor:  advisor.NewCommand(cfg.AdvisorCommand(), logger),
		Log:      logger,
	}
	if path := cfg.RemotePath(); path != "" && cfg.User() != "" {
		remote, err := store.OpenRemote(path)
		if err != nil {
			logger.Warn("remote store unavailable", "path", path, "err", err)
		} else {
			w.Remote = remote
			opts.Remote = remote
		}
	}

	svc, err := app.Open(ctx, opts)
	if err != nil {
		_ = w.closeRemote()
		return nil, err
	}
	w.Service = svc
	return w, nil
}

func (w *workspace) closeRemote() error {
	if w.Remote == nil {
		return nil
	}
	return w.Remote.Close()
}

// Close flushes pending writes and releases the stores.
func (w *workspace) Close(ctx context.Context) error {
	var errs []error
	if w.Service != nil {
		errs = append(errs, w.Service.Close(ctx))
	}
	errs = append(errs, w.closeRemote())
	return errors.Join(errs...)
}

// withService opens the workspace, runs fn and flushes.
func withService(ctx context.Context, fn func(*app.Service) error) error {
	w, err := openWorkspace(ctx)
	if err != nil {
		return err
	}
	runErr := fn(w.Service)
	closeErr := w.Close(ctx)
	if runErr != nil {
		return runErr
	}
	return closeErr
}

// emit prints v as JSON when requested, otherwise calls pretty.
func emit(v any, pretty func()) error {
	done, err := output.Emit(v)
	if err != nil || done {
		return err
	}
	pretty()
	return nil
}
