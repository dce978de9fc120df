package entity

type Player struct {
	ID         string     `json:"id"`
	GameID     string     `json:"game_id,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// PreferredDifficulty falls back to the default when nothing was chosen yet.
func (that *Player) PreferredDifficulty() Difficulty {
	if that.Difficulty.IsValid() {
		return that.Difficulty
	}
	return DefaultDifficulty
}
