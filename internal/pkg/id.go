package pkg

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateGameID - generates a unique identifier for the game.
func GenerateGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// GenerateNewSessionID - generates a new unique player session id.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
