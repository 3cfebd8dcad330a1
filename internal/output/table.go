package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/PhaserEditor2D/assetprep/internal/sliceutils"
)

// Table is a printable table. In plain output it renders as a bordered table, in JSON output it marshals as a list
// of objects keyed by header.
type Table struct {
	Headers      []string
	Rows         [][]string
	RightAligned []int
}

func (t *Table) MarshalOutput(f Format) interface{} {
	if f == JSONFormatName {
		records := make([]map[string]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			record := make(map[string]string, len(t.Headers))
			for i, h := range t.Headers {
				record[h], _ = sliceutils.GetString(row, i)
			}
			records = append(records, record)
		}
		return records
	}
	return t.Render()
}

// Render returns the table as text, or an empty string if it has no columns
func (t *Table) Render() string {
	columns := len(t.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = t.Headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			r[i], _ = sliceutils.GetString(row, i)
		}
		tw.AppendRow(r)
	}

	right := make(map[int]bool, len(t.RightAligned))
	for _, n := range t.RightAligned {
		right[n] = true
	}
	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if right[i] {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
