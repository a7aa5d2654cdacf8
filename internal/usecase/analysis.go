package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// Analysis is a best-move answer for an arbitrary board.
type Analysis struct {
	Move    tictactoe.Cell        `json:"move"`
	Scores  []tictactoe.MoveScore `json:"scores"`
	Outcome tictactoe.Outcome     `json:"outcome"`
}

type AnalysisUseCase interface {
	Evaluate(board tictactoe.Board) (tictactoe.Outcome, error)
	BestMove(board tictactoe.Board, automated, human tictactoe.Mark) (*Analysis, error)
}

type analysisUseCase struct{}

func NewAnalysisUseCase() AnalysisUseCase {
	return &analysisUseCase{}
}

func (that *analysisUseCase) Evaluate(board tictactoe.Board) (tictactoe.Outcome, error) {
	if err := board.Validate(); err != nil {
		return tictactoe.Outcome{}, fmt.Errorf("invalid board: %w", err)
	}

	return board.Evaluate(), nil
}

// BestMove - scores every empty cell and picks the one the bot would play.
func (that *analysisUseCase) BestMove(board tictactoe.Board, automated, human tictactoe.Mark) (*Analysis, error) {
	scores, err := tictactoe.ScoreMoves(board, automated, human)
	if err != nil {
		return nil, fmt.Errorf("failed to score moves: %w", err)
	}

	return &Analysis{
		Move:    tictactoe.Best(scores),
		Scores:  scores,
		Outcome: board.Evaluate(),
	}, nil
}
