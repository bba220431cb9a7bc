package catalog

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/printers"
)

// Catalog prints the filter options, marking the ones in Selection.
type Catalog struct {
	Service   *app.Service
	Selection filter.Selection
	Search    string
	JSON      bool
	Out       io.Writer
}

func (n *Catalog) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list catalog, no service")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	st := filter.New(n.Service.CatalogOrDefault())
	st.Preselect(n.Selection)
	st.SetSearch(n.Search)

	pp := printers.New(n.Out)
	if n.JSON {
		return printers.JSON(pp.Out, st.Listing())
	}
	pp.Catalog(st)
	return nil
}
