package store

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"tableflip.dev/caddr/pkg/routine"
)

// Origin says where a session's document came from.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginLocal  Origin = "local"
	OriginFresh  Origin = "fresh"
)

// Loaded is the document a session starts from.
type Loaded struct {
	Data   routine.AppData
	Origin Origin
	// RemoteErr is a remote failure the session recovered from.
	RemoteErr error
}

// LoadSession picks the starting document. A remote copy wins; without one
// the local copy is adopted and mirrored to the remote; without either a
// fresh document is used. Remote failures fall back to local.
func LoadSession(ctx context.Context, local LocalStore, remote RemoteStore, user string, logger *log.Logger) (Loaded, error) {
	useRemote := remote != nil && user != ""
	var remoteErr error
	if useRemote {
		data, ok, err := remote.Load(ctx, user)
		switch {
		case err != nil:
			remoteErr = err
			if logger != nil {
				logger.Warn("remote load failed, using local copy", "user", user, "err", err)
			}
		case ok:
			return Loaded{Data: data, Origin: OriginRemote}, nil
		}
	}

	data, ok, err := local.Load(ctx)
	if err != nil {
		return Loaded{}, fmt.Errorf("store: load local document: %w", err)
	}
	if !ok {
		return Loaded{Data: routine.Empty(), Origin: OriginFresh, RemoteErr: remoteErr}, nil
	}
	if useRemote && remoteErr == nil {
		if err := remote.Save(ctx, user, data); err != nil {
			remoteErr = err
			if logger != nil {
				logger.Warn("mirroring local copy to remote failed", "user", user, "err", err)
			}
		} else if logger != nil {
			logger.Info("migrated local copy to remote", "user", user)
		}
	}
	return Loaded{Data: data, Origin: OriginLocal, RemoteErr: remoteErr}, nil
}
