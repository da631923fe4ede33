package remove

import (
	"context"

	"github.com/fatih/color"

	"tableflip.dev/paddock/pkg/app"
	"tableflip.dev/paddock/pkg/store"
)

type Remove struct {
	ID int64

	Persistence store.Persistence
}

func (n *Remove) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence}

	rec, err := svc.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	if err := svc.Delete(ctx, n.ID); err != nil {
		return err
	}

	f := color.New(color.Faint)
	_, _ = f.Printf("deleted %q (%s)\n", rec.Title, rec.Date)
	return nil
}
