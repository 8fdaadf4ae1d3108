package span

// Unset marks a SourceSpan bound that has not been computed yet.
const Unset = -1

// SourceSpan is a half-open [Start, End) byte range into the original input.
type SourceSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewSourceSpan returns an uninitialized source span.
func NewSourceSpan() *SourceSpan {
	return &SourceSpan{Start: Unset, End: Unset}
}

// IsSet returns true if both bounds are initialized.
func (s *SourceSpan) IsSet() bool {
	return s != nil && s.Start != Unset && s.End != Unset
}

// Widen extends s to cover other, ignoring unset bounds on either side.
func (s *SourceSpan) Widen(other *SourceSpan) {
	if other == nil {
		return
	}
	if other.Start != Unset && (s.Start == Unset || other.Start < s.Start) {
		s.Start = other.Start
	}
	if other.End != Unset && (s.End == Unset || other.End > s.End) {
		s.End = other.End
	}
}

// Covers reports whether s contains other. Unset bounds on other are ignored.
func (s *SourceSpan) Covers(other *SourceSpan) bool {
	if other == nil {
		return true
	}
	if other.Start != Unset && (s.Start == Unset || s.Start > other.Start) {
		return false
	}
	if other.End != Unset && (s.End == Unset || s.End < other.End) {
		return false
	}
	return true
}
