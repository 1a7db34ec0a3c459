package entity

// Score holds the win counters of a session. Draws are not counted.
type Score struct {
	X int `json:"x"`
	O int `json:"o"`
}

// Add credits one win to mark.
func (that *Score) Add(mark Mark) {
	switch mark {
	case PlayerX:
		that.X++
	case PlayerO:
		that.O++
	}
}

// Session is one player's seat at the table: the current game, the running
// score and the opponent settings.
type Session struct {
	ID        string `json:"id"`
	Game      Game   `json:"game"`
	Score     Score  `json:"score"`
	AIEnabled bool   `json:"ai_enabled"`
	AIMark    Mark   `json:"ai_mark,omitempty"`
	Round     int    `json:"round"`
}

func NewSession(id string, aiEnabled bool, aiMark Mark) *Session {
	if !aiEnabled {
		aiMark = EmptyCell
	}

	return &Session{
		ID:        id,
		Game:      NewGame(),
		AIEnabled: aiEnabled,
		AIMark:    aiMark,
	}
}

// IsAITurn reports whether the heuristic player is the one to move.
func (that *Session) IsAITurn() bool {
	return that.AIEnabled && that.Game.IsOngoing() && that.Game.Turn == that.AIMark
}
