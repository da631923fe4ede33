package teaui

import (
	"context"
	"errors"

	"tableflip.dev/paddock/pkg/app"
	"tableflip.dev/paddock/pkg/store"
)

// UI launches the full-screen browser over the given persistence.
type UI struct {
	Persistence store.Persistence
}

func (u *UI) Do(ctx context.Context) error {
	if u.Persistence == nil {
		return errors.New("persistence not configured")
	}
	svc := &app.Service{Persistence: u.Persistence}
	return Run(ctx, svc)
}
