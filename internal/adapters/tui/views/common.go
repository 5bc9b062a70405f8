package views

// ViewState is embedded by every view for its size and status line
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets the status line
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetResult shows err on the status line, or ok when err is nil
func (s *ViewState) SetResult(ok string, err error) {
	if err != nil {
		s.SetMessage(err.Error(), true)
		return
	}
	s.SetMessage(ok, false)
}

// ClearMessage clears the status line
func (s *ViewState) ClearMessage() {
	s.SetMessage("", false)
}

// ContentWidth is the usable width inside the app margins, or fallback
// before the first resize. It is never below floor.
func (s *ViewState) ContentWidth(fallback, floor int) int {
	if s.Width <= 0 {
		return fallback
	}
	return max(floor, s.Width-appMargin)
}
