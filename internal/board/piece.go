package board

import (
	"fmt"
	"strings"
)

// Color represents the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// ParseColor accepts "white"/"w" and "black"/"b" in any case.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	}
	return White, false
}

// forward is the row delta of a step towards the opponent.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// Kind identifies a piece's movement rule. The order is the palette order
// used by editors.
type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Rook
	Bishop
	King
	Queen
	Amazon
	Empress
	Princess
	Nightrider
	Wazir
	Dabbaba
	Threeleaper
	Fourleaper
	Ferz
	Alfil
	Tripper
	Commuter
	Camel
	Zebra
	Giraffe
	Stag
	Antelope
	Champion
	Wizard
	Crab
	Barc
	Mann
	Kirin
	Toad
	DragonHorse
	Superpawn
	Archbishop
	Grasshopper

	NumKinds = int(iota)
)

type kindInfo struct {
	name        string
	symbol      string
	description string
}

var kindTable = [NumKinds]kindInfo{
	Pawn:        {"Pawn", "P", "Moves forward and captures diagonally. Can move forward two spaces on its first move."},
	Knight:      {"Knight", "N", "Jumps two spaces on one axis and one space on the perpendicular axis."},
	Rook:        {"Rook", "R", "Can move any number of spaces cardinally."},
	Bishop:      {"Bishop", "B", "Can move any number of spaces diagonally."},
	King:        {"King", "K", "Moves one space in any direction. You lose when this piece is put in checkmate."},
	Queen:       {"Queen", "Q", "Can move any number of spaces cardinally or diagonally."},
	Amazon:      {"Amazon", "QN", "Can move any number of spaces cardinally or diagonally OR jump two spaces on one axis and one space on the perpendicular axis."},
	Empress:     {"Empress", "RN", "Can move any number of spaces cardinally OR jump two spaces on one axis and one space on the perpendicular axis."},
	Princess:    {"Princess", "BN", "Can move any number of spaces diagonally OR jump two spaces on one axis and one space on the perpendicular axis."},
	Nightrider:  {"Nightrider", "NN", "Jumps two spaces on one axis and one space on the perpendicular axis, repeating as many times in a single direction as you want."},
	Wazir:       {"Wazir", "W", "Moves one space cardinally."},
	Dabbaba:     {"Dabbaba", "D", "Jumps two spaces cardinally."},
	Threeleaper: {"Threeleaper", "H", "Jumps three spaces cardinally."},
	Fourleaper:  {"Fourleaper", "R4", "Jumps four spaces cardinally."},
	Ferz:        {"Ferz", "F", "Moves one space diagonally."},
	Alfil:       {"Alfil", "A", "Jumps two spaces diagonally."},
	Tripper:     {"Tripper", "G", "Jumps three spaces diagonally."},
	Commuter:    {"Commuter", "B4", "Jumps four spaces diagonally."},
	Camel:       {"Camel", "C", "Jumps three spaces on one axis and one space on the perpendicular axis."},
	Zebra:       {"Zebra", "Z", "Jumps three spaces on one axis and two spaces on the perpendicular axis."},
	Giraffe:     {"Giraffe", "GI", "Jumps four spaces on one axis and one space on the perpendicular axis."},
	Stag:        {"Stag", "N2", "Jumps four spaces on one axis and two spaces on the perpendicular axis."},
	Antelope:    {"Antelope", "AN", "Jumps four spaces on one axis and three spaces on the perpendicular axis."},
	Champion:    {"Champion", "WAD", "Jumps one or two squares cardinally or two squares diagonally."},
	Wizard:      {"Wizard", "FC", "Jumps one square on one axis and one or three squares on the perpendicular axis."},
	Crab:        {"Crab", "CRAB", "Moves two squares horizontally and one square back or one square horizontally and two squares forward."},
	Barc:        {"Barc", "BARC", "Moves two squares horizontally and one square forward or one square horizontally and two squares back."},
	Mann:        {"Mann", "M", "Moves one space in any direction."},
	Kirin:       {"Kirin", "FD", "Moves one space diagonally or jumps two spaces cardinally."},
	Toad:        {"Toad", "DH", "Jumps two or three spaces cardinally."},
	DragonHorse: {"Dragon Horse", "BW", "Moves one space cardinally or any number of spaces diagonally."},
	Superpawn:   {"Superpawn", "SP", "Moves any number of spaces forward and captures any number of spaces diagonally."},
	Archbishop:  {"Archbishop", "AR", "Can move any number of spaces diagonally, bouncing off the side of the board at most once."},
	Grasshopper: {"Grasshopper", "GR", "Can move any number of spaces cardinally or diagonally, landing immediately beyond a piece."},
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool {
	return int(k) < NumKinds
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindTable[k].name
}

// Symbol returns the uppercase notation symbol of the kind.
func (k Kind) Symbol() string {
	if !k.Valid() {
		return ""
	}
	return kindTable[k].symbol
}

// Description returns a one-line summary of how the kind moves.
func (k Kind) Description() string {
	if !k.Valid() {
		return ""
	}
	return kindTable[k].description
}

// SymbolFor returns the notation symbol for a piece of kind k and color c:
// uppercase for white, lowercase for black.
func (k Kind) SymbolFor(c Color) string {
	if c == White {
		return k.Symbol()
	}
	return strings.ToLower(k.Symbol())
}

// KindFromSymbol looks up a kind by symbol, ignoring case.
func KindFromSymbol(symbol string) (Kind, bool) {
	upper := strings.ToUpper(symbol)
	for k := Kind(0); int(k) < NumKinds; k++ {
		if kindTable[k].symbol == upper {
			return k, true
		}
	}
	return 0, false
}

// Kinds returns every registered kind in palette order.
func Kinds() []Kind {
	kinds := make([]Kind, NumKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// PromotionKinds returns the kinds a pawn may promote to, in palette order.
func PromotionKinds() []Kind {
	var kinds []Kind
	for _, k := range Kinds() {
		if k.canPromoteTo() {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (k Kind) canPromoteTo() bool {
	return k.Valid() && k != Pawn && k != King && k != Superpawn
}

// Piece is a single piece on a board. Pieces are owned by exactly one Board
// and are never shared between boards.
type Piece struct {
	kind     Kind
	color    Color
	square   Square
	hasMoved bool
}

// NewPiece creates a piece. It panics if kind is not a registered kind.
func NewPiece(kind Kind, color Color, sq Square, hasMoved bool) *Piece {
	if !kind.Valid() {
		panic(fmt.Sprintf("board: cannot create piece of unregistered kind %d", kind))
	}
	return &Piece{kind: kind, color: color, square: sq, hasMoved: hasMoved}
}

// Kind returns the movement kind of the piece.
func (p *Piece) Kind() Kind { return p.kind }

// Color returns the side of the piece.
func (p *Piece) Color() Color { return p.color }

// Square returns the square the piece stands on.
func (p *Piece) Square() Square { return p.square }

// HasMoved reports whether the piece has ever moved. Once true it stays true.
func (p *Piece) HasMoved() bool { return p.hasMoved }

// moveTo relocates the piece and marks it as moved.
func (p *Piece) moveTo(sq Square) {
	p.square = sq
	p.hasMoved = true
}

// withKind returns a copy of the piece with a different kind.
func (p *Piece) withKind(k Kind) *Piece {
	return NewPiece(k, p.color, p.square, p.hasMoved)
}

// Token returns the notation token of the piece on a board with the given
// number of rows, e.g. "e1K" or "a7p^".
func (p *Piece) Token(rows int) string {
	var sb strings.Builder
	sb.WriteString(p.square.Name(rows))
	sb.WriteString(p.kind.SymbolFor(p.color))
	if p.hasMoved {
		sb.WriteByte('^')
	}
	return sb.String()
}

// Describe returns a human-readable description of the piece.
func (p *Piece) Describe(rows int) string {
	return fmt.Sprintf("%s %s @ %s (%s): %s",
		p.color, p.kind, p.square.Name(rows), p.Token(rows), p.kind.Description())
}
