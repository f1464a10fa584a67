package board

import "errors"

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidPiece      = errors.New("invalid piece")
	ErrMixedCase         = errors.New("invalid piece color")
	ErrUnknownSymbol     = errors.New("invalid piece symbol")
	ErrInvalidSquare     = errors.New("invalid square")
	ErrOccupiedSquare    = errors.New("square already occupied")
	ErrRoyalCount        = errors.New("must have exactly one king per side")
	ErrNoPromotion       = errors.New("no promotion pending")
	ErrInvalidPromotion  = errors.New("kind cannot be chosen for promotion")
)
