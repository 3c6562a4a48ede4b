package editor

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/chisel-editor/chisel/highlight"
)

// maxMinimapLen caps the content length recorded per row; anything longer
// renders the same in a strip a few dozen pixels wide.
const maxMinimapLen = 80

// MinimapRow summarizes a run of source lines for the minimap strip.
type MinimapRow struct {
	StartLine, EndLine int    // half-open [StartLine, EndLine)
	NonBlank           int    // non-blank lines in the run
	MaxIndent          int    // deepest indent level in the run
	MaxLen             int    // longest trimmed line, capped at maxMinimapLen
	Color              string // blended dominant token color, "" when unhighlighted
}

// Minimap produces a downsampled structural summary of a buffer, one row per
// bucket of source lines. Rows are computed lazily and cached; an edit
// invalidates only the row covering the changed line unless the line count
// shifted, so large documents never pay a full recompute per keystroke.
type Minimap struct {
	buf      *Buffer
	spans    func(line int) []highlight.Span // optional token source
	bucket   int
	tabWidth int

	rows      []MinimapRow
	valid     []bool
	lineCount int
}

// NewMinimap creates a minimap over the buffer with the given bucket size
// (source lines per summary row). spans may be nil for a colorless minimap.
// The minimap registers itself with the buffer's invalidation hook.
func NewMinimap(b *Buffer, bucket, tabWidth int, spans func(line int) []highlight.Span) *Minimap {
	if bucket <= 0 {
		bucket = 4
	}
	if tabWidth <= 0 {
		tabWidth = 4
	}
	m := &Minimap{
		buf:       b,
		spans:     spans,
		bucket:    bucket,
		tabWidth:  tabWidth,
		lineCount: b.LineCount(),
	}
	b.OnInvalidate(m.InvalidateFrom)
	return m
}

// RowCount returns the number of summary rows for the current document.
func (m *Minimap) RowCount() int {
	return (m.buf.LineCount() + m.bucket - 1) / m.bucket
}

// Row returns summary row i, computing it if the cache is stale.
func (m *Minimap) Row(i int) MinimapRow {
	n := m.RowCount()
	if i < 0 || i >= n {
		return MinimapRow{}
	}
	if len(m.rows) != n {
		rows := make([]MinimapRow, n)
		valid := make([]bool, n)
		copy(rows, m.rows)
		copy(valid, m.valid)
		m.rows = rows
		m.valid = valid
	}
	if !m.valid[i] {
		m.rows[i] = m.compute(i)
		m.valid[i] = true
	}
	return m.rows[i]
}

// Rows returns all summary rows top to bottom.
func (m *Minimap) Rows() []MinimapRow {
	out := make([]MinimapRow, m.RowCount())
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// InvalidateFrom drops cached rows covering fromLine. While the line count
// is unchanged only the covering row is dropped; when lines were added or
// removed every row at or below the edit has shifted and is dropped too.
func (m *Minimap) InvalidateFrom(fromLine int) {
	row := fromLine / m.bucket
	if row < 0 {
		row = 0
	}
	count := m.buf.LineCount()
	if count != m.lineCount {
		m.lineCount = count
		for i := row; i < len(m.valid); i++ {
			m.valid[i] = false
		}
		return
	}
	if row < len(m.valid) {
		m.valid[row] = false
	}
}

func (m *Minimap) compute(i int) MinimapRow {
	start := i * m.bucket
	end := start + m.bucket
	if end > m.buf.LineCount() {
		end = m.buf.LineCount()
	}

	row := MinimapRow{StartLine: start, EndLine: end}
	var r, g, b, weight float64

	for line := start; line < end; line++ {
		text := m.buf.Line(line)
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		row.NonBlank++
		if n := len([]rune(trimmed)); n > row.MaxLen {
			if n > maxMinimapLen {
				n = maxMinimapLen
			}
			row.MaxLen = n
		}
		if depth := IndentDepth(text, m.tabWidth); depth > row.MaxIndent {
			row.MaxIndent = depth
		}
		if m.spans == nil {
			continue
		}
		for _, s := range m.spans(line) {
			c, err := colorful.Hex(s.Class.Color())
			if err != nil {
				continue
			}
			w := float64(s.End - s.Start)
			r += c.R * w
			g += c.G * w
			b += c.B * w
			weight += w
		}
	}

	if weight > 0 {
		row.Color = colorful.Color{R: r / weight, G: g / weight, B: b / weight}.Hex()
	}
	return row
}
