// Package board implements fairy-chess board state and move legality for boards
// of arbitrary size.
package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Square is a board coordinate. Row 0 is the top rank as displayed, so for a
// board with R rows, rank N in notation is row R-N.
type Square struct {
	Row int
	Col int
}

// Add returns the square offset by (dr, dc).
func (sq Square) Add(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// Name returns the algebraic name of the square on a board with the given
// number of rows (e.g. "e4", "aa12").
func (sq Square) Name(rows int) string {
	return ColumnName(sq.Col) + strconv.Itoa(rows-sq.Row)
}

const numLetters = 26

// ColumnName returns the spreadsheet-style column name for a 0-based column:
// a..z, aa..az, ba..zz, aaa...
func ColumnName(col int) string {
	if col < 0 {
		return "?"
	}
	var buf []byte
	for n := col + 1; n > 0; n = (n - 1) / numLetters {
		buf = append(buf, byte('a'+(n-1)%numLetters))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// ParseColumnName is the inverse of ColumnName.
func ParseColumnName(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	n := 0
	for _, c := range name {
		if c < 'a' || c > 'z' {
			return 0, fmt.Errorf("invalid column name: %s", name)
		}
		if n > (1<<31)/numLetters {
			return 0, fmt.Errorf("column name too long: %s", name)
		}
		n = n*numLetters + int(c-'a') + 1
	}
	return n - 1, nil
}

var squareNamePattern = regexp.MustCompile(`^([a-z]+)([0-9]+)$`)

// ParseSquareName parses an algebraic square name for a board of the given
// size. It fails if the name is malformed or the square is not on the board.
func ParseSquareName(name string, rows, cols int) (Square, error) {
	m := squareNamePattern.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return Square{}, fmt.Errorf("%w: %s", ErrInvalidSquare, name)
	}
	col, err := ParseColumnName(m[1])
	if err != nil {
		return Square{}, fmt.Errorf("%w: %s", ErrInvalidSquare, name)
	}
	rank, err := strconv.Atoi(m[2])
	if err != nil {
		return Square{}, fmt.Errorf("%w: %s", ErrInvalidSquare, name)
	}
	sq := Square{Row: rows - rank, Col: col}
	if !inBounds(rows, cols, sq) {
		return Square{}, fmt.Errorf("%w: %s", ErrInvalidSquare, name)
	}
	return sq, nil
}

// IsLightSquare reports the colour of a square. The corner square on white's
// right hand (h1 on a standard board) is always light, whatever the parity of
// the board size.
func IsLightSquare(rows, cols int, sq Square) bool {
	return ((rows-sq.Row-1)+(cols-sq.Col-1))%2 == 0
}

func inBounds(rows, cols int, sq Square) bool {
	return sq.Row >= 0 && sq.Row < rows && sq.Col >= 0 && sq.Col < cols
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}

// chebyshev returns the king-move distance between two squares.
func chebyshev(a, b Square) int {
	return max(abs(a.Row-b.Row), abs(a.Col-b.Col))
}
