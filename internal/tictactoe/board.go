package tictactoe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const Size = 3

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

const (
	StatusInProgress Status = "in_progress"
	StatusWin        Status = "win"
	StatusTie        Status = "tie"
)

var (
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidMark  = errors.New("invalid mark")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrGameFinished = errors.New("game is already finished")

	// lines - every row, column and diagonal of the board.
	lines = [8][3]Cell{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
	}
)

// Mark is the content of a single cell.
type Mark string

// Opponent - returns the other player's mark.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// IsPlayer - reports whether the mark belongs to a player.
func (that Mark) IsPlayer() bool {
	return that == X || that == O
}

// Cell addresses a board position, zero-based.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) inBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

type Status string

// Outcome is the result of evaluating a board. Winner is set only when Status is StatusWin.
type Outcome struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func (that Outcome) IsTerminal() bool {
	return that.Status != StatusInProgress
}

// Board is a 3x3 grid in row-major order.
type Board [Size][Size]Mark

// ParseBoard - builds a board from three rows, "" or " " stand for an empty cell.
func ParseBoard(rows ...[Size]string) (Board, error) {
	var board Board

	if len(rows) != Size {
		return board, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidCell, Size, len(rows))
	}

	for i, row := range rows {
		for j, value := range row {
			mark := Mark(strings.TrimSpace(value))
			if mark != Empty && !mark.IsPlayer() {
				return Board{}, fmt.Errorf("%w: %q at (%d, %d)", ErrInvalidMark, value, i, j)
			}
			board[i][j] = mark
		}
	}

	return board, nil
}

// UnmarshalJSON - accepts exactly Size rows of Size marks. Marks are checked by Validate.
func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Mark
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to decode board: %w", err)
	}

	if len(rows) != Size {
		return fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidCell, Size, len(rows))
	}

	var board Board
	for i, row := range rows {
		if len(row) != Size {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidCell, i, len(row), Size)
		}

		copy(board[i][:], row)
	}

	*that = board

	return nil
}

// Validate - checks that every cell holds Empty, X or O.
func (that *Board) Validate() error {
	for i, row := range that {
		for j, mark := range row {
			if mark != Empty && !mark.IsPlayer() {
				return fmt.Errorf("%w: %q at (%d, %d)", ErrInvalidMark, mark, i, j)
			}
		}
	}

	return nil
}

// Evaluate - determines whether the board is won, tied or still in progress.
// A completed line wins even when the board is also full.
func (that *Board) Evaluate() Outcome {
	for _, line := range lines {
		a := that.at(line[0])
		if a != Empty && a == that.at(line[1]) && a == that.at(line[2]) {
			return Outcome{Status: StatusWin, Winner: a}
		}
	}

	for _, row := range that {
		for _, mark := range row {
			if mark == Empty {
				return Outcome{Status: StatusInProgress}
			}
		}
	}

	return Outcome{Status: StatusTie}
}

// Apply - writes mark into an empty cell of an unfinished board.
func (that *Board) Apply(row, col int, mark Mark) error {
	cell := Cell{Row: row, Col: col}
	if !cell.inBounds() {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidCell, row, col)
	}

	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	if that.Evaluate().IsTerminal() {
		return ErrGameFinished
	}

	if that[row][col] != Empty {
		return fmt.Errorf("%w: (%d, %d)", ErrCellOccupied, row, col)
	}

	that[row][col] = mark

	return nil
}

// EmptyCells - lists free cells in row-major order.
func (that *Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, Size*Size)
	for i, row := range that {
		for j, mark := range row {
			if mark == Empty {
				cells = append(cells, Cell{Row: i, Col: j})
			}
		}
	}

	return cells
}

// Count - number of cells holding mark.
func (that *Board) Count(mark Mark) int {
	n := 0
	for _, row := range that {
		for _, m := range row {
			if m == mark {
				n++
			}
		}
	}

	return n
}

func (that *Board) String() string {
	var sb strings.Builder
	for i, row := range that {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, mark := range row {
			if j > 0 {
				sb.WriteByte('|')
			}
			if mark == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(mark))
		}
	}

	return sb.String()
}

func (that *Board) at(cell Cell) Mark {
	return that[cell.Row][cell.Col]
}
