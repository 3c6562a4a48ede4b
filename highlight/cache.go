package highlight

// Cache holds per-line spans and resume states so that re-highlighting after
// an edit restarts from the first changed line instead of line 0. Lines are
// recomputed lazily, top-down, only as far as a caller asks.
//
// The cache is single-threaded like the rest of the engine; Snapshot/Adopt
// exist for the one legitimate off-thread case (tokenizing a large document
// on a worker), with buffer-version stamping so a stale result is discarded
// rather than merged.
type Cache struct {
	hl    Highlighter
	spans [][]Span
	// states[i] is the tokenizer state after line i; the prior state for
	// line i is states[i-1], or nil at the start of the document.
	states []State
	valid  int // lines [0, valid) have up-to-date entries
}

// NewCache creates an empty cache over the given highlighter.
func NewCache(hl Highlighter) *Cache {
	return &Cache{hl: hl}
}

// InvalidateFrom marks line and everything below it as unknown. Downstream
// lines are not recomputed eagerly; the next LineSpans call that needs them
// resumes from the last valid state. Suitable as a Buffer invalidation
// listener.
func (c *Cache) InvalidateFrom(line int) {
	if line < 0 {
		line = 0
	}
	if line < c.valid {
		c.valid = line
	}
}

// Reset drops everything, including computed capacity.
func (c *Cache) Reset() {
	c.spans = nil
	c.states = nil
	c.valid = 0
}

// LineSpans returns the spans for line i, tokenizing forward from the first
// invalid line as needed. Out-of-range lines return nil.
func (c *Cache) LineSpans(src LineSource, i int) []Span {
	if i < 0 || i >= src.LineCount() {
		return nil
	}
	c.ensure(src, i)
	return c.spans[i]
}

// StateAfter returns the tokenizer state at the end of line i, computing up
// to it if necessary.
func (c *Cache) StateAfter(src LineSource, i int) State {
	if i < 0 || i >= src.LineCount() {
		return nil
	}
	c.ensure(src, i)
	return c.states[i]
}

func (c *Cache) ensure(src LineSource, i int) {
	n := src.LineCount()
	if len(c.spans) < n {
		c.spans = append(c.spans, make([][]Span, n-len(c.spans))...)
		c.states = append(c.states, make([]State, n-len(c.states))...)
	} else if len(c.spans) > n {
		c.spans = c.spans[:n]
		c.states = c.states[:n]
		if c.valid > n {
			c.valid = n
		}
	}

	for line := c.valid; line <= i; line++ {
		var prior State
		if line > 0 {
			prior = c.states[line-1]
		}
		c.spans[line], c.states[line] = c.hl.TokenizeLine(src.Line(line), prior)
	}
	if i+1 > c.valid {
		c.valid = i + 1
	}
}

// Snapshot is a copy of document text taken at a known version, safe to
// tokenize off the command thread because it shares nothing with the live
// buffer.
type Snapshot struct {
	Version uint64
	Lines   []string
}

// Line implements LineSource.
func (s Snapshot) Line(i int) string {
	if i < 0 || i >= len(s.Lines) {
		return ""
	}
	return s.Lines[i]
}

// LineCount implements LineSource.
func (s Snapshot) LineCount() int {
	return len(s.Lines)
}

// VersionedSource is a LineSource that knows its mutation version.
// editor.Buffer satisfies it.
type VersionedSource interface {
	LineSource
	Version() uint64
}

// TakeSnapshot copies the document text and stamps it with the current
// version.
func TakeSnapshot(src VersionedSource) Snapshot {
	lines := make([]string, src.LineCount())
	for i := range lines {
		lines[i] = src.Line(i)
	}
	return Snapshot{Version: src.Version(), Lines: lines}
}

// Result is a fully tokenized snapshot produced off-thread.
type Result struct {
	Version uint64
	Spans   [][]Span
	States  []State
}

// Tokenize runs the highlighter over a snapshot. Safe to call on a worker
// goroutine; it touches nothing shared.
func Tokenize(hl Highlighter, snap Snapshot) Result {
	res := Result{
		Version: snap.Version,
		Spans:   make([][]Span, len(snap.Lines)),
		States:  make([]State, len(snap.Lines)),
	}
	var prior State
	for i, line := range snap.Lines {
		res.Spans[i], res.States[i] = hl.TokenizeLine(line, prior)
		prior = res.States[i]
	}
	return res
}

// Adopt merges an off-thread result into the cache. The result is discarded
// and false returned if the buffer has moved on since the snapshot was
// taken; a stale highlight must never be applied.
func (c *Cache) Adopt(res Result, currentVersion uint64) bool {
	if res.Version != currentVersion {
		return false
	}
	c.spans = res.Spans
	c.states = res.States
	c.valid = len(res.Spans)
	return true
}

// Classifier adapts the cache to the bracket matcher's per-position check:
// it reports true for characters outside string/comment tokens. Lines are
// tokenized on demand through the cache.
func Classifier(c *Cache, src LineSource) func(line, col int) bool {
	return func(line, col int) bool {
		return !ClassAt(c.LineSpans(src, line), col).InStringOrComment()
	}
}
