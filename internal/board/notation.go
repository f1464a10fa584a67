package board

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// StandardPosition is the orthodox chess starting position.
const StandardPosition = `8 8
a1R b1N c1B d1Q e1K f1B g1N h1R
a8r b8n c8b d8q e8k f8b g8n h8r
a2P b2P c2P d2P e2P f2P g2P h2P
a7p b7p c7p d7p e7p f7p g7p h7p`

var tokenPattern = regexp.MustCompile(`^([a-z]+[0-9]+)(.*?)(\^?)$`)

// Parse reads a position in board notation:
//
//	<rows> <cols>
//	<token> <token> ...
//
// Each token is <square><symbol>[^], with an uppercase symbol for white, a
// lowercase symbol for black, and a trailing ^ marking a piece that has
// already moved. The position must contain exactly one king per side.
func Parse(text string) (*Board, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: need rows and cols", ErrInvalidDimensions)
	}
	rows, err := parseDimension(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rows: %s", ErrInvalidDimensions, fields[0])
	}
	cols, err := parseDimension(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cols: %s", ErrInvalidDimensions, fields[1])
	}

	b := New(rows, cols)
	for _, token := range fields[2:] {
		p, err := ParsePiece(token, rows, cols)
		if err != nil {
			return nil, err
		}
		if !b.AddPiece(p) {
			return nil, fmt.Errorf("%w: %s", ErrOccupiedSquare, token)
		}
	}

	var white, black int
	for _, p := range b.pieces {
		if p.kind != King {
			continue
		}
		if p.color == White {
			white++
		} else {
			black++
		}
	}
	switch {
	case white+black != 2:
		return nil, fmt.Errorf("%w: found %d kings", ErrRoyalCount, white+black)
	case white == 0:
		return nil, fmt.Errorf("%w: missing white king", ErrRoyalCount)
	case black == 0:
		return nil, fmt.Errorf("%w: missing black king", ErrRoyalCount)
	}
	return b, nil
}

// parseDimension accepts any positive integral number, including forms such
// as "8.0".
func parseDimension(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("not a positive integer: %s", s)
	}
	return int(f), nil
}

// ParsePiece parses a single piece token for a board of the given size.
func ParsePiece(token string, rows, cols int) (*Piece, error) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPiece, token)
	}
	name, symbol, moved := m[1], m[2], m[3] == "^"

	var color Color
	switch symbol {
	case strings.ToUpper(symbol):
		color = White
	case strings.ToLower(symbol):
		color = Black
	default:
		return nil, fmt.Errorf("%w: %s", ErrMixedCase, token)
	}

	kind, ok := KindFromSymbol(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	sq, err := ParseSquareName(name, rows, cols)
	if err != nil {
		return nil, err
	}
	return NewPiece(kind, color, sq, moved), nil
}

// String returns the board in the notation read by Parse.
func (b *Board) String() string {
	tokens := make([]string, len(b.pieces))
	for i, p := range b.pieces {
		tokens[i] = p.Token(b.rows)
	}
	return fmt.Sprintf("%d %d\n%s", b.rows, b.cols, strings.Join(tokens, " "))
}
