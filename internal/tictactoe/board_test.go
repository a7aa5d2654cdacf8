package tictactoe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, rows ...[Size]string) Board {
	t.Helper()

	board, err := ParseBoard(rows...)
	require.NoError(t, err)

	return board
}

func TestBoard_Evaluate(t *testing.T) {
	t.Run("Tie when no line matches and the board is full", func(t *testing.T) {
		// Given: a full board without three in a row
		board := mustBoard(t,
			[Size]string{"X", "O", "X"},
			[Size]string{"X", "O", "O"},
			[Size]string{"O", "X", "X"},
		)

		// When: evaluating the board
		outcome := board.Evaluate()

		// Then: the game is a tie
		assert.Equal(t, Outcome{Status: StatusTie}, outcome)
	})

	t.Run("Winner as soon as a line completes", func(t *testing.T) {
		// Given: X has the top row while cells are still empty
		board := mustBoard(t,
			[Size]string{"X", "X", "X"},
			[Size]string{"O", "O", ""},
			[Size]string{"", "", ""},
		)

		// When: evaluating the board
		outcome := board.Evaluate()

		// Then: X wins
		assert.Equal(t, Outcome{Status: StatusWin, Winner: X}, outcome)
	})

	t.Run("Winning line takes priority over a full board", func(t *testing.T) {
		// Given: the last move filled the board and completed a row
		board := mustBoard(t,
			[Size]string{"X", "X", "X"},
			[Size]string{"O", "O", "X"},
			[Size]string{"X", "O", "O"},
		)

		// When: evaluating the board
		outcome := board.Evaluate()

		// Then: X wins, not a tie
		assert.Equal(t, Outcome{Status: StatusWin, Winner: X}, outcome)
	})

	t.Run("Columns and diagonals", func(t *testing.T) {
		column := mustBoard(t,
			[Size]string{"X", "O", ""},
			[Size]string{"X", "O", ""},
			[Size]string{"", "O", "X"},
		)
		diagonal := mustBoard(t,
			[Size]string{"X", "O", "O"},
			[Size]string{"", "O", "X"},
			[Size]string{"O", "X", "X"},
		)

		assert.Equal(t, Outcome{Status: StatusWin, Winner: O}, column.Evaluate())
		assert.Equal(t, Outcome{Status: StatusWin, Winner: O}, diagonal.Evaluate())
	})

	t.Run("In progress when no line and empty cells remain", func(t *testing.T) {
		// Given: a board with a few moves
		board := mustBoard(t,
			[Size]string{"X", "O", ""},
			[Size]string{"", "X", ""},
			[Size]string{"", "", "O"},
		)

		// When: evaluating the board
		outcome := board.Evaluate()

		// Then: the game continues
		assert.Equal(t, Outcome{Status: StatusInProgress}, outcome)
		assert.False(t, outcome.IsTerminal())
	})

	t.Run("Evaluation has no side effects", func(t *testing.T) {
		// Given: a board and its copy
		board := mustBoard(t,
			[Size]string{"X", "O", ""},
			[Size]string{"", "X", ""},
			[Size]string{"", "", ""},
		)
		before := board

		// When: evaluating twice
		first := board.Evaluate()
		second := board.Evaluate()

		// Then: results match and the board is unchanged
		assert.Equal(t, first, second)
		assert.Equal(t, before, board)
	})
}

func TestBoard_Apply(t *testing.T) {
	t.Run("Writes the mark into an empty cell", func(t *testing.T) {
		var board Board

		err := board.Apply(1, 2, X)

		require.NoError(t, err)
		assert.Equal(t, X, board[1][2])
		assert.Equal(t, 1, board.Count(X))
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: a board with X in the center
		var board Board
		require.NoError(t, board.Apply(1, 1, X))
		before := board

		// When: O plays the same cell
		err := board.Apply(1, 1, O)

		// Then: the move is rejected and the board is unchanged
		require.ErrorIs(t, err, ErrCellOccupied)
		assert.Equal(t, before, board)
	})

	t.Run("Rejects cells out of range", func(t *testing.T) {
		var board Board

		assert.ErrorIs(t, board.Apply(-1, 0, X), ErrInvalidCell)
		assert.ErrorIs(t, board.Apply(0, 3, X), ErrInvalidCell)
		assert.ErrorIs(t, board.Apply(3, 3, X), ErrInvalidCell)
	})

	t.Run("Rejects non player marks", func(t *testing.T) {
		var board Board

		assert.ErrorIs(t, board.Apply(0, 0, Empty), ErrInvalidMark)
		assert.ErrorIs(t, board.Apply(0, 0, Mark("Z")), ErrInvalidMark)
	})

	t.Run("Rejects moves after the game is won", func(t *testing.T) {
		// Given: X already won with empty cells left
		board := mustBoard(t,
			[Size]string{"X", "X", "X"},
			[Size]string{"O", "O", ""},
			[Size]string{"", "", ""},
		)

		// When: O tries to keep playing
		err := board.Apply(1, 2, O)

		// Then: the game is reported as finished
		require.ErrorIs(t, err, ErrGameFinished)
		assert.Equal(t, Empty, board[1][2])
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	board := mustBoard(t,
		[Size]string{"X", "", "O"},
		[Size]string{"", "X", ""},
		[Size]string{"O", "", "X"},
	)

	cells := board.EmptyCells()

	assert.Equal(t, []Cell{{0, 1}, {1, 0}, {1, 2}, {2, 1}}, cells)
}

func TestParseBoard(t *testing.T) {
	t.Run("Rejects unknown marks", func(t *testing.T) {
		_, err := ParseBoard(
			[Size]string{"X", "", ""},
			[Size]string{"", "Q", ""},
			[Size]string{"", "", ""},
		)

		require.ErrorIs(t, err, ErrInvalidMark)
	})

	t.Run("Rejects a wrong number of rows", func(t *testing.T) {
		_, err := ParseBoard([Size]string{"X", "", ""})

		require.Error(t, err)
	})

	t.Run("Renders back to text", func(t *testing.T) {
		board := mustBoard(t,
			[Size]string{"X", "", "O"},
			[Size]string{"", " ", ""},
			[Size]string{"", "", "X"},
		)

		assert.Equal(t, "X|.|O\n.|.|.\n.|.|X", board.String())
	})
}

func TestBoard_UnmarshalJSON(t *testing.T) {
	t.Run("Three rows of three", func(t *testing.T) {
		var board Board
		err := json.Unmarshal([]byte(`[["X","",""],["","O",""],["","","X"]]`), &board)

		require.NoError(t, err)
		assert.Equal(t, X, board[0][0])
		assert.Equal(t, O, board[1][1])
		assert.Equal(t, X, board[2][2])
		assert.Equal(t, Empty, board[0][1])
	})

	t.Run("Round trip keeps the board", func(t *testing.T) {
		board := mustBoard(t,
			[Size]string{"X", "O", "X"},
			[Size]string{"", "O", ""},
			[Size]string{"", "", ""},
		)

		data, err := json.Marshal(board)
		require.NoError(t, err)

		var decoded Board
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, board, decoded)
	})

	wrongShapes := map[string]string{
		"one short row":       `[["X","X"]]`,
		"no rows":             `[]`,
		"null":                `null`,
		"fourth row":          `[["","",""],["","",""],["","",""],["X","X","X"]]`,
		"two rows":            `[["","",""],["","",""]]`,
		"fourth column":       `[["","","","X"],["","",""],["","",""]]`,
		"short middle row":    `[["","",""],[""],["","",""]]`,
		"missing last column": `[["",""],["",""],["",""]]`,
	}

	for name, data := range wrongShapes {
		t.Run("Rejects "+name, func(t *testing.T) {
			// Given: a board that is not 3x3
			board := Board{{X}}

			// When: decoding it
			err := json.Unmarshal([]byte(data), &board)

			// Then: the cell error is reported and the board is untouched
			require.ErrorIs(t, err, ErrInvalidCell)
			assert.Equal(t, Board{{X}}, board)
		})
	}

	t.Run("Rejects non-string marks", func(t *testing.T) {
		var board Board
		err := json.Unmarshal([]byte(`[[1,2,3],["","",""],["","",""]]`), &board)

		require.Error(t, err)
	})
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, O, X.Opponent())
	assert.Equal(t, X, O.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
}
