package usecase

// Event is an input to a game session.
type Event interface {
	isEvent()
}

// NewGameRequested starts a game, or restarts the current one.
type NewGameRequested struct{}

// HumanMoveRequested asks to claim Cell for the player whose turn it is.
type HumanMoveRequested struct {
	Cell int
}

// AIMoveRequested is the deferred move of the heuristic player scheduled
// for Round.
type AIMoveRequested struct {
	Round int
}

func (NewGameRequested) isEvent()   {}
func (HumanMoveRequested) isEvent() {}
func (AIMoveRequested) isEvent()    {}
