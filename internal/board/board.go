package board

import (
	"fmt"
	"strings"
)

// Board is a rectangular fairy-chess position. It does not track whose turn
// it is; callers pass the side explicitly to every query.
type Board struct {
	rows, cols int
	pieces     []*Piece

	// The most recent move, kept for en passant and for highlighting.
	lastMoved *Piece
	lastFrom  Square

	// Set when a pawn reaches its far rank; Move is refused until
	// CommitPromotion is called.
	pendingPromotion bool
}

// New creates an empty board. It panics if either dimension is not positive.
func New(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("board: invalid dimensions %dx%d", rows, cols))
	}
	return &Board{rows: rows, cols: cols}
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// InBounds reports whether sq is on the board.
func (b *Board) InBounds(sq Square) bool {
	return inBounds(b.rows, b.cols, sq)
}

// IsLightSquare reports whether sq is a light square on this board.
func (b *Board) IsLightSquare(sq Square) bool {
	return IsLightSquare(b.rows, b.cols, sq)
}

// SquareName returns the algebraic name of sq on this board.
func (b *Board) SquareName(sq Square) string {
	return sq.Name(b.rows)
}

// ParseSquare parses an algebraic square name, failing if the board does not
// contain the square.
func (b *Board) ParseSquare(name string) (Square, error) {
	return ParseSquareName(name, b.rows, b.cols)
}

// PieceAt returns the piece on sq, or nil if the square is empty.
func (b *Board) PieceAt(sq Square) *Piece {
	for _, p := range b.pieces {
		if p.square == sq {
			return p
		}
	}
	return nil
}

// Pieces returns the pieces on the board in insertion order.
func (b *Board) Pieces() []*Piece {
	out := make([]*Piece, len(b.pieces))
	copy(out, b.pieces)
	return out
}

// Royal returns the king of side c, or nil if it has none.
func (b *Board) Royal(c Color) *Piece {
	for _, p := range b.pieces {
		if p.kind == King && p.color == c {
			return p
		}
	}
	return nil
}

// AddPiece places p on the board. It does nothing and returns false if the
// square is off the board or already occupied, or p is already placed.
func (b *Board) AddPiece(p *Piece) bool {
	if p == nil || !b.InBounds(p.square) || b.PieceAt(p.square) != nil {
		return false
	}
	for _, q := range b.pieces {
		if q == p {
			return false
		}
	}
	b.pieces = append(b.pieces, p)
	return true
}

// RemovePiece takes p off the board and reports whether it was there.
func (b *Board) RemovePiece(p *Piece) bool {
	for i, q := range b.pieces {
		if q == p {
			b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
			if p == b.lastMoved {
				b.lastMoved = nil
			}
			return true
		}
	}
	return false
}

// RemoveAt removes and returns the piece on sq, if any.
func (b *Board) RemoveAt(sq Square) *Piece {
	p := b.PieceAt(sq)
	if p != nil {
		b.RemovePiece(p)
	}
	return p
}

// SetRows changes the number of rows, discarding pieces that fall off the
// board. Values below 1 are ignored.
func (b *Board) SetRows(rows int) bool {
	if rows < 1 {
		return false
	}
	b.rows = rows
	b.dropOutOfBounds()
	return true
}

// SetCols changes the number of columns, discarding pieces that fall off the
// board. Values below 1 are ignored.
func (b *Board) SetCols(cols int) bool {
	if cols < 1 {
		return false
	}
	b.cols = cols
	b.dropOutOfBounds()
	return true
}

func (b *Board) dropOutOfBounds() {
	kept := b.pieces[:0]
	for _, p := range b.pieces {
		if b.InBounds(p.square) {
			kept = append(kept, p)
		} else if p == b.lastMoved {
			b.lastMoved = nil
		}
	}
	for i := len(kept); i < len(b.pieces); i++ {
		b.pieces[i] = nil
	}
	b.pieces = kept
}

// LastMove returns the piece moved most recently and the square it left.
func (b *Board) LastMove() (*Piece, Square, bool) {
	if b.lastMoved == nil {
		return nil, Square{}, false
	}
	return b.lastMoved, b.lastFrom, true
}

// PendingPromotion reports whether a pawn is waiting for CommitPromotion.
func (b *Board) PendingPromotion() bool {
	return b.pendingPromotion
}

// Clone returns a deep copy of the board. Every piece is copied, so mutating
// the clone never touches b.
func (b *Board) Clone() *Board {
	c := &Board{
		rows:             b.rows,
		cols:             b.cols,
		pieces:           make([]*Piece, len(b.pieces)),
		lastFrom:         b.lastFrom,
		pendingPromotion: b.pendingPromotion,
	}
	for i, p := range b.pieces {
		cp := *p
		c.pieces[i] = &cp
		if p == b.lastMoved {
			c.lastMoved = c.pieces[i]
		}
	}
	return c
}

// Grid renders the board as text, one rank per line with rank numbers and
// file letters. Empty light squares are '.', empty dark squares ':'.
func (b *Board) Grid() string {
	width := 1
	for _, p := range b.pieces {
		width = max(width, len(p.kind.Symbol()))
	}
	rankWidth := len(fmt.Sprint(b.rows))

	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		fmt.Fprintf(&sb, "%*d ", rankWidth, b.rows-row)
		for col := 0; col < b.cols; col++ {
			sq := Square{Row: row, Col: col}
			cell := ":"
			if b.IsLightSquare(sq) {
				cell = "."
			}
			if p := b.PieceAt(sq); p != nil {
				cell = p.kind.SymbolFor(p.color)
			}
			fmt.Fprintf(&sb, " %-*s", width, cell)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(" ", rankWidth+1))
	for col := 0; col < b.cols; col++ {
		fmt.Fprintf(&sb, " %-*s", width, ColumnName(col))
	}
	sb.WriteByte('\n')
	return sb.String()
}
