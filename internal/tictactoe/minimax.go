package tictactoe

import (
	"errors"
	"fmt"
	"math"
)

const (
	WinScore  = 10
	LossScore = -10
	TieScore  = 0
)

var ErrNoAvailableMoves = errors.New("no available moves")

// MoveScore is the minimax value of playing the automated mark into Cell.
type MoveScore struct {
	Cell  Cell `json:"cell"`
	Score int  `json:"score"`
}

// Score - evaluates a terminal outcome from the automated player's side.
// The value does not depend on how many moves it took to get there.
func Score(outcome Outcome, automated Mark) int {
	switch {
	case outcome.Status != StatusWin:
		return TieScore
	case outcome.Winner == automated:
		return WinScore
	default:
		return LossScore
	}
}

// minimax - returns the game value of board assuming optimal play from both sides.
// The automated player maximizes, its opponent minimizes. The board is mutated
// while searching and restored before returning.
func minimax(board *Board, automated Mark, maximizing bool) int {
	if outcome := board.Evaluate(); outcome.IsTerminal() {
		return Score(outcome, automated)
	}

	mark := automated.Opponent()
	best := math.MaxInt
	if maximizing {
		mark = automated
		best = math.MinInt
	}

	for i := range board {
		for j := range board[i] {
			if board[i][j] != Empty {
				continue
			}

			board[i][j] = mark
			score := minimax(board, automated, !maximizing)
			board[i][j] = Empty

			if maximizing {
				best = max(best, score)
			} else {
				best = min(best, score)
			}
		}
	}

	return best
}

// ScoreMoves - minimax value of every empty cell for the automated player, row-major.
func ScoreMoves(board Board, automated, human Mark) ([]MoveScore, error) {
	if err := checkMarks(automated, human); err != nil {
		return nil, err
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}

	if board.Evaluate().IsTerminal() {
		return nil, ErrNoAvailableMoves
	}

	scores := make([]MoveScore, 0, Size*Size)
	for _, cell := range board.EmptyCells() {
		board[cell.Row][cell.Col] = automated
		score := minimax(&board, automated, false)
		board[cell.Row][cell.Col] = Empty

		scores = append(scores, MoveScore{Cell: cell, Score: score})
	}

	return scores, nil
}

// BestMove - picks the cell with the strictly greatest minimax value.
// Equal scores keep the first cell in row-major order. The caller's board is not modified.
func BestMove(board Board, automated, human Mark) (Cell, error) {
	scores, err := ScoreMoves(board, automated, human)
	if err != nil {
		return Cell{}, err
	}

	return Best(scores), nil
}

// Best - first cell holding the greatest score.
func Best(scores []MoveScore) Cell {
	best := math.MinInt
	var move Cell
	for _, candidate := range scores {
		if candidate.Score > best {
			best = candidate.Score
			move = candidate.Cell
		}
	}

	return move
}

func checkMarks(automated, human Mark) error {
	if !automated.IsPlayer() || !human.IsPlayer() {
		return fmt.Errorf("%w: automated %q, human %q", ErrInvalidMark, automated, human)
	}

	if automated == human {
		return fmt.Errorf("%w: both players use %q", ErrInvalidMark, automated)
	}

	return nil
}
