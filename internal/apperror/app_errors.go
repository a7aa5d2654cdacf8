package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrNoActiveGame   = errors.New("no active game")
	ErrGameNotFound   = errors.New("game not found")
	ErrGameInProgress = errors.New("another game is in progress")
	ErrPlayerNotFound = errors.New("player not found")
)
