package board

import "fmt"

// offset is a (row, col) step.
type offset struct {
	dr, dc int
}

var (
	diagonals = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	// riderBases holds the base step of each rider kind; the rider may slide
	// along all eight reflections of it.
	riderBases = map[Kind]offset{
		Rook:       {1, 0},
		Bishop:     {1, 1},
		Nightrider: {2, 1},
	}

	// constituents lists the kinds whose moves a compound kind combines.
	constituents = map[Kind][]Kind{
		Queen:       {Rook, Bishop},
		Amazon:      {Queen, Knight},
		Empress:     {Rook, Knight},
		Princess:    {Bishop, Knight},
		Champion:    {Wazir, Alfil, Dabbaba},
		Wizard:      {Ferz, Camel},
		Kirin:       {Ferz, Dabbaba},
		Toad:        {Dabbaba, Threeleaper},
		DragonHorse: {Bishop, Wazir},
	}

	// orthogonalLeaps and diagonalLeaps give the exact jump distance of the
	// fixed-distance leapers.
	orthogonalLeaps = map[Kind]int{Wazir: 1, Dabbaba: 2, Threeleaper: 3, Fourleaper: 4}
	diagonalLeaps   = map[Kind]int{Ferz: 1, Alfil: 2, Tripper: 3, Commuter: 4}

	// obliqueLeaps gives the (long, short) legs of the oblique leapers.
	obliqueLeaps = map[Kind][2]int{
		Camel:    {3, 1},
		Zebra:    {3, 2},
		Giraffe:  {4, 1},
		Stag:     {4, 2},
		Antelope: {4, 3},
	}
)

// reflections returns the eight symmetric variants of a base step.
func reflections(o offset) []offset {
	r, c := o.dr, o.dc
	return []offset{
		{r, c}, {c, r},
		{-r, c}, {c, -r},
		{r, -c}, {-c, r},
		{-r, -c}, {-c, -r},
	}
}

// Reaches reports whether p could move to the target square given only the
// occupancy of b and the last move. It ignores turn order and whether the
// move would leave p's own king in check.
func (b *Board) Reaches(p *Piece, to Square) bool {
	return b.reachesFrom(p, to, true)
}

func (b *Board) reachesFrom(p *Piece, to Square, castling bool) bool {
	if !b.InBounds(to) {
		return false
	}
	if p.kind == King {
		return b.kingReach(p.color, p.square, p.hasMoved, to, castling)
	}
	if dst := b.PieceAt(to); dst != nil && dst.color == p.color {
		return false
	}
	return b.reach(p.kind, p.color, p.square, p.hasMoved, to)
}

// reach dispatches to the movement rule of kind k for a piece of color c on
// from. The friendly-destination check has already been applied.
func (b *Board) reach(k Kind, c Color, from Square, moved bool, to Square) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col

	switch k {
	case Pawn:
		return b.pawnReach(c, from, moved, to)
	case Knight:
		return dr*dr+dc*dc == 5
	case Rook, Bishop, Nightrider:
		for _, dir := range reflections(riderBases[k]) {
			if b.slide(c, from, to, dir, from) {
				return true
			}
		}
		return false
	case King:
		return b.kingReach(c, from, moved, to, true)
	case Queen, Amazon, Empress, Princess, Champion, Wizard, Kirin, Toad, DragonHorse:
		for _, sub := range constituents[k] {
			if b.reach(sub, c, from, moved, to) {
				return true
			}
		}
		return false
	case Wazir, Dabbaba, Threeleaper, Fourleaper:
		d := orthogonalLeaps[k]
		return (dr == 0 && abs(dc) == d) || (dc == 0 && abs(dr) == d)
	case Ferz, Alfil, Tripper, Commuter:
		d := diagonalLeaps[k]
		return abs(dr) == d && abs(dc) == d
	case Camel, Zebra, Giraffe, Stag, Antelope:
		legs := obliqueLeaps[k]
		ar, ac := abs(dr), abs(dc)
		return (ar == legs[0] && ac == legs[1]) || (ar == legs[1] && ac == legs[0])
	case Crab:
		return dr*dr+dc*dc == 5 && (dr*-c.forward() == 1 || dr*-c.forward() == -2)
	case Barc:
		return dr*dr+dc*dc == 5 && (dr*-c.forward() == -1 || dr*-c.forward() == 2)
	case Mann:
		return chebyshev(from, to) <= 1
	case Superpawn:
		return b.superpawnReach(c, from, to)
	case Archbishop:
		return b.archbishopReach(c, from, to)
	case Grasshopper:
		return b.grasshopperReach(from, to)
	}
	panic(fmt.Sprintf("board: no movement rule for kind %d", k))
}

// slide reports whether a piece of color c can slide from start to target by
// repeated steps of dir. The square vacated is treated as empty, which lets a
// two-leg move pass back over the square its piece started on. An enemy piece
// ends the slide on its square; a friendly piece blocks it.
func (b *Board) slide(c Color, start, target Square, dir offset, vacated Square) bool {
	if dir.dr == 0 && dir.dc == 0 {
		return false
	}
	for cur := start; b.InBounds(cur); cur = cur.Add(dir.dr, dir.dc) {
		p := b.PieceAt(cur)
		if cur == vacated || cur == start {
			p = nil
		}
		if p != nil && p.color == c {
			return false
		}
		if cur == target {
			return true
		}
		if p != nil {
			return false
		}
	}
	return false
}

func (b *Board) pawnReach(c Color, from Square, moved bool, to Square) bool {
	fwd := c.forward()
	dst := b.PieceAt(to)
	dr, dc := to.Row-from.Row, to.Col-from.Col

	if dr == fwd && abs(dc) == 1 {
		if dst != nil {
			return true
		}
		return b.enPassantTarget(c, from, to)
	}
	if dc != 0 || dst != nil {
		return false
	}
	if dr == fwd {
		return true
	}
	return !moved && dr == 2*fwd && b.PieceAt(from.Add(fwd, 0)) == nil
}

// enPassantTarget reports whether the last move was an enemy pawn stepping
// two squares to land beside from on the destination's file.
func (b *Board) enPassantTarget(c Color, from, to Square) bool {
	last, lastFrom, ok := b.LastMove()
	if !ok || last.kind != Pawn || last.color == c {
		return false
	}
	return last.square == Square{Row: from.Row, Col: to.Col} &&
		lastFrom == Square{Row: from.Row + 2*c.forward(), Col: to.Col}
}

func (b *Board) kingReach(c Color, from Square, moved bool, to Square, castling bool) bool {
	if other := b.Royal(c.Other()); other != nil && chebyshev(other.square, to) <= 1 {
		return false
	}
	if castling && !moved && to.Row == from.Row && abs(to.Col-from.Col) <= 2 && to != from && !b.IsInCheck(c) {
		for _, dir := range []int{-1, 1} {
			if sign(to.Col-from.Col) != dir {
				continue
			}
			rook := b.castlingRook(c, from, dir)
			if rook == nil {
				continue
			}
			if rook.square.Col == from.Col+dir {
				if to.Col == from.Col+dir {
					return true
				}
			} else if to.Col == from.Col+2*dir {
				return true
			}
		}
	}
	if dst := b.PieceAt(to); dst != nil && dst.color == c {
		return false
	}
	return chebyshev(from, to) <= 1
}

// castlingRook scans the king's rank in direction dir and returns the nearest
// piece if it is an unmoved friendly rook. The scan gives up when one of the
// two squares closest to the king can be reached by an enemy piece other than
// the enemy king.
func (b *Board) castlingRook(c Color, from Square, dir int) *Piece {
	for col := from.Col + dir; col >= 0 && col < b.cols; col += dir {
		sq := Square{Row: from.Row, Col: col}
		if abs(col-from.Col) <= 2 && b.SideCanMoveTo(sq, c.Other(), false) {
			return nil
		}
		if p := b.PieceAt(sq); p != nil {
			if p.kind == Rook && !p.hasMoved && p.color == c {
				return p
			}
			return nil
		}
	}
	return nil
}

func (b *Board) superpawnReach(c Color, from, to Square) bool {
	fwd := c.forward()
	reached := false
	for dc := -1; dc <= 1; dc++ {
		if b.slide(c, from, to, offset{fwd, dc}, from) {
			reached = true
			break
		}
	}
	if !reached {
		return false
	}
	occupied := b.PieceAt(to) != nil
	if to.Col == from.Col {
		return !occupied
	}
	return occupied
}

func (b *Board) archbishopReach(c Color, from, to Square) bool {
	for _, dir := range diagonals {
		if b.slide(c, from, to, dir, from) {
			return true
		}
	}
	for _, edge := range b.edgeSquares() {
		if edge == from || b.PieceAt(edge) != nil {
			continue
		}
		reachesEdge := false
		for _, dir := range diagonals {
			if b.slide(c, from, edge, dir, from) {
				reachesEdge = true
				break
			}
		}
		if !reachesEdge {
			continue
		}
		for _, dir := range diagonals {
			if b.slide(c, edge, to, dir, from) {
				return true
			}
		}
	}
	return false
}

// edgeSquares returns every square on the rim of the board.
func (b *Board) edgeSquares() []Square {
	var edges []Square
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			if row == 0 || row == b.rows-1 || col == 0 || col == b.cols-1 {
				edges = append(edges, Square{Row: row, Col: col})
			}
		}
	}
	return edges
}

// grasshopperReach walks the line towards to; the first occupied square is the
// hurdle and the grasshopper lands on the empty square directly beyond it.
func (b *Board) grasshopperReach(from, to Square) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	if dr == 0 && dc == 0 {
		return false
	}
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return false
	}
	step := offset{sign(dr), sign(dc)}
	if b.PieceAt(to) != nil {
		return false
	}
	hurdle := to.Add(-step.dr, -step.dc)
	if hurdle == from || b.PieceAt(hurdle) == nil {
		return false
	}
	for cur := from.Add(step.dr, step.dc); cur != hurdle; cur = cur.Add(step.dr, step.dc) {
		if b.PieceAt(cur) != nil {
			return false
		}
	}
	return true
}
