package board

import "fmt"

// CanMove reports whether the piece on from may legally move to to. The move
// is simulated on a clone and rejected if it leaves the mover's king in check.
func (b *Board) CanMove(from, to Square) bool {
	p := b.PieceAt(from)
	if p == nil || !b.InBounds(to) {
		return false
	}
	if !b.Reaches(p, to) {
		return false
	}
	sim := b.Clone()
	sim.apply(from, to)
	return !sim.IsInCheck(p.color)
}

// LegalMoves returns every square the piece on from may legally move to,
// scanning rows top to bottom.
func (b *Board) LegalMoves(from Square) []Square {
	var moves []Square
	if b.PieceAt(from) == nil {
		return moves
	}
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			to := Square{Row: row, Col: col}
			if b.CanMove(from, to) {
				moves = append(moves, to)
			}
		}
	}
	return moves
}

// Move plays a legal move and reports whether it was played. Illegal moves,
// and any move while a promotion is pending, are ignored.
func (b *Board) Move(from, to Square) bool {
	if b.pendingPromotion || !b.CanMove(from, to) {
		return false
	}
	b.apply(from, to)
	return true
}

// MoveUnchecked plays a move without checking that it is legal. The special
// cases of Move (en passant, castling, promotion) still apply. It reports
// false only when from is empty or to is off the board.
func (b *Board) MoveUnchecked(from, to Square) bool {
	if b.PieceAt(from) == nil || !b.InBounds(to) || from == to {
		return false
	}
	b.apply(from, to)
	return true
}

// apply performs a move without checking legality.
func (b *Board) apply(from, to Square) {
	p := b.PieceAt(from)
	if p == nil {
		return
	}
	dst := b.PieceAt(to)
	dir := sign(to.Col - from.Col)

	switch {
	case dst == nil && p.kind == Pawn && to.Col != from.Col:
		// En passant: the captured pawn stands beside the mover.
		b.RemoveAt(Square{Row: from.Row, Col: to.Col})
	case p.kind == King && dst != nil && dst.kind == Rook && dst.color == p.color:
		// Castling with the rook on the king's destination: the rook takes
		// the square the king passed over.
		p.moveTo(to)
		dst.moveTo(Square{Row: to.Row, Col: to.Col - dir})
	case p.kind == King && dst == nil && to.Row == from.Row && abs(to.Col-from.Col) == 2:
		// Castling with a distant rook: the nearest piece beyond the king
		// lands beside the king's destination.
		for col := from.Col + dir; col >= 0 && col < b.cols; col += dir {
			if rook := b.PieceAt(Square{Row: from.Row, Col: col}); rook != nil {
				rook.moveTo(Square{Row: to.Row, Col: to.Col - dir})
				break
			}
		}
	case dst != nil:
		b.RemovePiece(dst)
	}

	p.moveTo(to)
	if p.kind == Pawn && to.Row == b.farRank(p.color) {
		b.pendingPromotion = true
	}
	b.lastMoved = p
	b.lastFrom = from
}

// farRank is the row on which pawns of color c promote.
func (b *Board) farRank(c Color) int {
	if c == White {
		return 0
	}
	return b.rows - 1
}

// CommitPromotion replaces the pawn awaiting promotion with a piece of kind
// k on the same square, keeping its color and moved flag.
func (b *Board) CommitPromotion(k Kind) error {
	if !b.pendingPromotion || b.lastMoved == nil {
		return ErrNoPromotion
	}
	if !k.canPromoteTo() {
		return fmt.Errorf("%w: %s", ErrInvalidPromotion, k)
	}
	old := b.lastMoved
	promoted := old.withKind(k)
	for i, p := range b.pieces {
		if p == old {
			b.pieces[i] = promoted
			break
		}
	}
	b.lastMoved = promoted
	b.pendingPromotion = false
	return nil
}

// IsInCheck reports whether side c's king is attacked. A side without a king
// counts as in check.
func (b *Board) IsInCheck(c Color) bool {
	king := b.Royal(c)
	if king == nil {
		return true
	}
	for _, p := range b.pieces {
		if p.color == c {
			continue
		}
		if b.reachesFrom(p, king.square, false) {
			return true
		}
	}
	return false
}

// SideCanMoveTo reports whether any piece of side c can legally move to sq.
// Kings are skipped unless includeRoyal is set.
func (b *Board) SideCanMoveTo(sq Square, c Color, includeRoyal bool) bool {
	for _, p := range b.Pieces() {
		if p.color != c || (!includeRoyal && p.kind == King) {
			continue
		}
		if b.CanMove(p.square, sq) {
			return true
		}
	}
	return false
}

// CanAnyMove reports whether side c has at least one legal move.
func (b *Board) CanAnyMove(c Color) bool {
	for _, p := range b.Pieces() {
		if p.color != c {
			continue
		}
		for row := 0; row < b.rows; row++ {
			for col := 0; col < b.cols; col++ {
				if b.CanMove(p.square, Square{Row: row, Col: col}) {
					return true
				}
			}
		}
	}
	return false
}

// IsCheckmate reports whether side c is in check with no legal move.
func (b *Board) IsCheckmate(c Color) bool {
	return b.IsInCheck(c) && !b.CanAnyMove(c)
}

// IsStalemate reports whether side c is not in check but has no legal move.
func (b *Board) IsStalemate(c Color) bool {
	return !b.IsInCheck(c) && !b.CanAnyMove(c)
}

// Status summarises the position from one side's point of view.
type Status uint8

const (
	StatusNormal Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	default:
		return "normal"
	}
}

// Status evaluates check, checkmate and stalemate for side c.
func (b *Board) Status(c Color) Status {
	inCheck := b.IsInCheck(c)
	canMove := b.CanAnyMove(c)
	switch {
	case inCheck && !canMove:
		return StatusCheckmate
	case inCheck:
		return StatusCheck
	case !canMove:
		return StatusStalemate
	}
	return StatusNormal
}
