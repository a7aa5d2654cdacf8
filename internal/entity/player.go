package entity

import "github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"

type Player struct {
	ID     string         `json:"id"`
	Mark   tictactoe.Mark `json:"mark,omitempty"`
	GameID string         `json:"game_id,omitempty"`
}

// InGame - player is attached to a game session.
func (that *Player) InGame() bool {
	return that.GameID != ""
}

// Leave - detaches the player from its game.
func (that *Player) Leave() {
	that.GameID = ""
	that.Mark = tictactoe.Empty
}
