package edit

import (
	"context"

	"tableflip.dev/paddock/pkg/app"
	"tableflip.dev/paddock/pkg/printers"
	"tableflip.dev/paddock/pkg/store"
)

// Edit patches an existing record. Nil field pointers leave the stored value
// untouched; grid slots merge one position at a time.
type Edit struct {
	ID int64

	Title    *string
	Date     *string
	Location *string
	First    *string
	Second   *string
	Third    *string
	Content  *string
	Image    *string

	GridSlots   map[int]string
	RemoveImage bool

	ShowID      bool
	Persistence store.Persistence
}

func (n *Edit) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence}

	rec, err := svc.Get(ctx, n.ID)
	if err != nil {
		return err
	}

	if n.Title != nil {
		rec.Title = *n.Title
	}
	if n.Date != nil {
		rec.Date = *n.Date
	}
	if n.Location != nil {
		rec.Location = *n.Location
	}
	if n.First != nil {
		rec.Podium.First = *n.First
	}
	if n.Second != nil {
		rec.Podium.Second = *n.Second
	}
	if n.Third != nil {
		rec.Podium.Third = *n.Third
	}
	if n.Content != nil {
		rec.Content = *n.Content
	}
	if n.Image != nil {
		rec.Image = *n.Image
	}
	if n.RemoveImage {
		rec.Image = ""
	}
	for pos, label := range n.GridSlots {
		if err := rec.SetGridSlot(pos, label); err != nil {
			return err
		}
	}

	updated, err := svc.Update(ctx, rec)
	if err != nil {
		return err
	}

	day, err := svc.ForDate(ctx, updated.Date)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.TitleWithCount(updated.Date, len(day))
	pp.Records(day...)
	return nil
}
