package views

// topicWindow tracks the cursor over the roadmap's topics and the slice of
// them that fits on screen. Pages are aligned to multiples of rows.
type topicWindow struct {
	rows   int
	n      int
	cursor int
}

func newTopicWindow(rows int) *topicWindow {
	return &topicWindow{rows: max(1, rows)}
}

// SetRows changes how many topics fit on screen
func (w *topicWindow) SetRows(rows int) {
	w.rows = max(1, rows)
}

// SetLen sets the number of topics, clamping the cursor
func (w *topicWindow) SetLen(n int) {
	w.n = max(0, n)
	w.cursor = w.clamp(w.cursor)
}

// Cursor is the index of the selected topic
func (w *topicWindow) Cursor() int {
	return w.cursor
}

// Move shifts the cursor by delta topics
func (w *topicWindow) Move(delta int) {
	w.cursor = w.clamp(w.cursor + delta)
}

// Turn jumps delta pages and selects the first topic of the new page
func (w *topicWindow) Turn(delta int) {
	page := w.Page() - 1 + delta
	page = min(max(page, 0), w.Pages()-1)
	w.cursor = w.clamp(page * w.rows)
}

// Visible returns the half-open range of topics on the current page
func (w *topicWindow) Visible() (start, end int) {
	start = (w.cursor / w.rows) * w.rows
	return start, min(start+w.rows, w.n)
}

// Page is the 1-based page holding the cursor
func (w *topicWindow) Page() int {
	return w.cursor/w.rows + 1
}

// Pages is the number of pages, at least one
func (w *topicWindow) Pages() int {
	if w.n == 0 {
		return 1
	}
	return (w.n + w.rows - 1) / w.rows
}

func (w *topicWindow) clamp(i int) int {
	if w.n == 0 || i < 0 {
		return 0
	}
	return min(i, w.n-1)
}
