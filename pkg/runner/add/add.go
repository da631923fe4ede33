package add

import (
	"context"

	"tableflip.dev/paddock/pkg/app"
	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/printers"
	"tableflip.dev/paddock/pkg/store"
)

type Add struct {
	Record diary.Record

	ShowID      bool
	Persistence store.Persistence
}

func (n *Add) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence}

	created, err := svc.Create(ctx, n.Record)
	if err != nil {
		return err
	}

	day, err := svc.ForDate(ctx, created.Date)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.TitleWithCount(created.Date, len(day))
	pp.Records(day...)
	return nil
}
