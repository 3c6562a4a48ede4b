package editor

// FoldRegion represents a foldable region of text.
type FoldRegion struct {
	StartLine int
	EndLine   int
	Folded    bool
}

// FoldState tracks which regions are folded.
type FoldState struct {
	regions []FoldRegion
}

// NewFoldState creates an empty fold state.
func NewFoldState() *FoldState {
	return &FoldState{}
}

// SetRegions replaces the fold regions (e.g. recomputed after an edit).
// Preserves fold state for regions that match by start line.
func (fs *FoldState) SetRegions(regions []FoldRegion) {
	oldFolded := make(map[int]bool)
	for _, r := range fs.regions {
		if r.Folded {
			oldFolded[r.StartLine] = true
		}
	}
	for i := range regions {
		if oldFolded[regions[i].StartLine] {
			regions[i].Folded = true
		}
	}
	fs.regions = regions
}

// Toggle folds/unfolds the region at the given line.
func (fs *FoldState) Toggle(line int) bool {
	for i, r := range fs.regions {
		if r.StartLine == line {
			fs.regions[i].Folded = !fs.regions[i].Folded
			return true
		}
	}
	return false
}

// FoldAll folds all regions.
func (fs *FoldState) FoldAll() {
	for i := range fs.regions {
		fs.regions[i].Folded = true
	}
}

// UnfoldAll unfolds all regions.
func (fs *FoldState) UnfoldAll() {
	for i := range fs.regions {
		fs.regions[i].Folded = false
	}
}

// IsLineHidden returns true if the given line is inside a folded region
// (not the start line, which remains visible).
func (fs *FoldState) IsLineHidden(line int) bool {
	for _, r := range fs.regions {
		if r.Folded && line > r.StartLine && line <= r.EndLine {
			return true
		}
	}
	return false
}

// Regions returns all fold regions.
func (fs *FoldState) Regions() []FoldRegion {
	return fs.regions
}

// VisibleLines returns which line indices are visible after folding.
func (fs *FoldState) VisibleLines(totalLines int) []int {
	visible := make([]int, 0, totalLines)
	for i := 0; i < totalLines; i++ {
		if !fs.IsLineHidden(i) {
			visible = append(visible, i)
		}
	}
	return visible
}

// RegionsFromIndent derives fold regions from indentation structure: a line
// opens a region when the next non-blank line is indented deeper, and the
// region runs while lines stay deeper than the opener. Blank lines inside a
// block belong to it.
func RegionsFromIndent(b *Buffer, width int) []FoldRegion {
	var regions []FoldRegion
	type open struct {
		start, depth int
	}
	var stack []open

	lastNonBlank := -1
	for i := 0; i < b.LineCount(); i++ {
		line := b.Line(i)
		if isBlank(line) {
			continue
		}
		depth := IndentDepth(line, width)

		for len(stack) > 0 && depth <= stack[len(stack)-1].depth {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if lastNonBlank > top.start {
				regions = append(regions, FoldRegion{StartLine: top.start, EndLine: lastNonBlank})
			}
		}
		stack = append(stack, open{start: i, depth: depth})
		lastNonBlank = i
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if lastNonBlank > top.start {
			regions = append(regions, FoldRegion{StartLine: top.start, EndLine: lastNonBlank})
		}
	}
	return regions
}
