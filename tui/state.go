package tui

type state int

const (
	loadingState state = iota
	errorState
	browseState
	searchState
	historyState
	selectState
	playState
)

// transient states are left automatically and never recorded in the state history.
func (s state) transient() bool {
	return s == loadingState || s == selectState || s == playState
}
