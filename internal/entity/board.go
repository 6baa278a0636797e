package entity

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

// Board is a 3x3 grid stored row-major.
type Board [CellCount]Mark

// Cell addresses a board cell by row and column.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Line is a triple of row-major cell indices.
type Line [3]int

// WinLines is ordered rows, columns, main diagonal, anti-diagonal.
// The first complete line in this order decides the winner.
var WinLines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Index converts coordinates to a row-major index. Callers check InBounds first.
func Index(row, col int) int {
	return row*BoardSize + col
}

func Coordinates(index int) Cell {
	return Cell{Row: index / BoardSize, Col: index % BoardSize}
}

// Cells converts the line to coordinates, e.g. for highlighting.
func (that Line) Cells() [3]Cell {
	return [3]Cell{Coordinates(that[0]), Coordinates(that[1]), Coordinates(that[2])}
}

func (that *Board) Full() bool {
	for _, mark := range that {
		if mark == Empty {
			return false
		}
	}
	return true
}

// Complete returns the mark holding all three cells of line, or Empty.
func (that *Board) Complete(line Line) Mark {
	a, b, c := that[line[0]], that[line[1]], that[line[2]]
	if a != Empty && a == b && b == c {
		return a
	}
	return Empty
}

