package reporter

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/yudaprama/timeid/internal/bench"
	"github.com/yudaprama/timeid/internal/idgenerator"
)

// Decoder is what the id table needs to explain an id.
type Decoder interface {
	Decompose(id idgenerator.ID) idgenerator.Components
	Time(id idgenerator.ID) time.Time
}

type layoutDecoder struct {
	layout idgenerator.Layout
	epoch  time.Time
}

// NewDecoder explains ids minted with layout l counting from epoch.
func NewDecoder(l idgenerator.Layout, epoch time.Time) Decoder {
	return layoutDecoder{layout: l, epoch: epoch}
}

func (d layoutDecoder) Decompose(id idgenerator.ID) idgenerator.Components {
	return d.layout.Decompose(id)
}

func (d layoutDecoder) Time(id idgenerator.ID) time.Time {
	return d.epoch.Add(time.Duration(d.layout.Decompose(id).Timestamp) * time.Millisecond).UTC()
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	return t
}

// IDs prints one row per id with its parts and alternate forms.
func IDs(w io.Writer, d Decoder, ids []idgenerator.ID) {
	t := newTable(w, "Decoded identifiers")
	t.AppendHeader(table.Row{"Text", "Hex", "Integer", "Time (UTC)", "Tick", "Node", "Seq"})
	for _, id := range ids {
		c := d.Decompose(id)
		t.AppendRow(table.Row{
			id.String(),
			id.Hex(),
			id.Uint64(),
			d.Time(id).Format("2006-01-02 15:04:05.000"),
			c.Timestamp,
			c.NodeID,
			c.Sequence,
		})
	}
	t.Render()
}

// Layout prints the bit allocation and what it implies.
func Layout(w io.Writer, l idgenerator.Layout, epoch time.Time) {
	t := newTable(w, fmt.Sprintf("Layout %s", l))
	t.AppendRow(table.Row{"Timestamp bits", l.TimestampBits})
	t.AppendRow(table.Row{"Node bits", l.NodeBits})
	t.AppendRow(table.Row{"Sequence bits", l.SequenceBits})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Max node id", l.MaxNodeID()})
	t.AppendRow(table.Row{"Ids per ms per node", l.TicksPerNode()})
	t.AppendRow(table.Row{"Epoch", epoch.UTC().Format(time.RFC3339)})
	t.AppendRow(table.Row{"Last tick", epoch.Add(time.Duration(l.MaxTimestamp()) * time.Millisecond).UTC().Format(time.RFC3339)})
	t.AppendRow(table.Row{"Lifespan", fmt.Sprintf("%.1f years", l.Lifespan().Hours()/24/365.25)})
	t.Render()
}

// Bench prints the outcome of a load run.
func Bench(w io.Writer, r bench.Result) {
	t := newTable(w, "Bench")
	t.AppendRow(table.Row{"Workers", r.Workers})
	t.AppendRow(table.Row{"Ids per worker", r.PerWorker})
	t.AppendRow(table.Row{"Total", r.Total})
	t.AppendRow(table.Row{"Unique", r.Unique})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Elapsed", r.Elapsed.Round(time.Microsecond)})
	t.AppendRow(table.Row{"Ids per second", fmt.Sprintf("%.0f", r.Rate())})
	t.AppendRow(table.Row{"Sequence overflows", r.Stats.Overflows})
	t.AppendRow(table.Row{"Clock regressions", r.Stats.Regressions})
	t.AppendRow(table.Row{"Time waiting on clock", r.Stats.WaitTime.Round(time.Microsecond)})
	t.Render()
}
