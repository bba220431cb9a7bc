package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/worldsync/pkg/filter"
)

// Catalog prints each filter category as a table of ids and names, limited
// to the options visible under the state's search.
func (pp *PrettyPrint) Catalog(st *filter.State) {
	bold := pp.style(color.Bold)
	faint := pp.style(color.Faint, color.Italic)

	for _, cat := range filter.Categories() {
		items := st.Visible(cat)
		pp.TitleWithCount(cat.Label(), len(items))
		if len(items) == 0 {
			_, _ = faint.Fprintln(pp.Out, cat.Empty())
			pp.NewLine()
			continue
		}

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("  ID"), bold.Sprint("Name"))
		for _, it := range items {
			mark := " "
			if it.Checked {
				mark = "✓"
			}
			tbl.AddRow(mark+" "+it.ID, it.Name)
		}
		_, _ = fmt.Fprintln(pp.Out, tbl)
		pp.NewLine()
	}
}
