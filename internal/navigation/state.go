package navigation

// Kind tags the position a State describes.
type Kind string

const (
	// KindQuestion is a regular question screen.
	KindQuestion Kind = "question"
	// KindIterationNaming is the iteration-naming sub-screen of a repeatable
	// category, reached before its first question.
	KindIterationNaming Kind = "iteration-naming"
	// KindBoundaryFront signals a retreat past the first question. The
	// pointers keep their previous values; there is nothing before them.
	KindBoundaryFront Kind = "boundary-front"
	// KindBoundaryEnd signals an advance past the last question. Reaching it
	// is the trigger for the results/summary views.
	KindBoundaryEnd Kind = "boundary-end"
)

// State is an immutable pointer triple into the currently filtered
// category/iteration/question lists. Each transition returns a fresh value;
// nothing is shared or cached across transitions.
type State struct {
	Kind      Kind `json:"kind"`
	Category  int  `json:"category"`
	Iteration int  `json:"iteration"`
	// Question is -1 while on the iteration-naming sub-screen.
	Question int `json:"question"`
}

// AtBoundary reports whether the state is one of the two terminal signals.
func (s State) AtBoundary() bool {
	return s.Kind == KindBoundaryFront || s.Kind == KindBoundaryEnd
}
