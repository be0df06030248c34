package app

import (
	"context"

	"tableflip.dev/caddr/pkg/store"
)

// Follow reloads the document whenever events report that another process
// rewrote it, until ctx is done or events is closed.
func (s *Service) Follow(ctx context.Context, events <-chan store.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Key != "" && ev.Key != store.DocumentKey {
				continue
			}
			reloaded, err := s.Reload(ctx)
			switch {
			case err != nil:
				s.log.Warn("reload after change failed", "err", err)
			case reloaded:
				s.log.Debug("reloaded routine after change on disk")
			}
		}
	}
}
