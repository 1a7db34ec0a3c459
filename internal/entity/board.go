package entity

// Mark is the occupant of a board cell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

// CenterCell is the index of the middle cell.
const CenterCell = 4

var (
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	CornerCells = [4]int{0, 2, 6, 8}
)

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Board is a row-major 3x3 grid.
type Board [BoardSize]Mark

// Winner returns the mark holding a full triple, or EmptyCell.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that Board) HasWinner() bool {
	return that.Winner() != EmptyCell
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells returns the indexes of unoccupied cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// CellAt maps a position inside the board area to a cell index by integer
// division with the cell dimensions.
func CellAt(x, y, cellWidth, cellHeight int) (int, bool) {
	if x < 0 || y < 0 || cellWidth <= 0 || cellHeight <= 0 {
		return 0, false
	}

	col := x / cellWidth
	row := y / cellHeight
	if col > 2 || row > 2 {
		return 0, false
	}

	return row*3 + col, true
}
