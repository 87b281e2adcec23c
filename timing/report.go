package timing

import (
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Report accumulates spans and renders them as a summary table. Safe for
// concurrent use.
type Report struct {
	mu    sync.Mutex
	spans []*Span
}

// Start begins a span that registers itself with the report when stopped.
func (r *Report) Start(description string, opts ...Option) *Span {
	span := Start(description, opts...)
	r.Add(span)
	return span
}

// Add registers a span with the report.
func (r *Report) Add(span *Span) {
	if span == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans = append(r.spans, span)
}

// Len returns the number of registered spans.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spans)
}

// Render returns the report as a table of descriptions and elapsed times,
// with a totals row. An empty report renders as an empty string.
func (r *Report) Render() string {
	r.mu.Lock()
	spans := make([]*Span, len(r.spans))
	copy(spans, r.spans)
	r.mu.Unlock()

	if len(spans) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Step", "Elapsed"})

	var total time.Duration
	for _, span := range spans {
		elapsed := span.Elapsed()
		total += elapsed
		tw.AppendRow(table.Row{span.Description(), formatElapsed(elapsed)})
	}
	tw.AppendFooter(table.Row{"Total", formatElapsed(total)})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})

	return tw.Render()
}

func formatElapsed(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}
