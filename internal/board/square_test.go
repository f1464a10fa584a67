package board

import (
	"errors"
	"testing"
)

func TestColumnName(t *testing.T) {
	tests := []struct {
		col  int
		name string
	}{
		{0, "a"},
		{7, "h"},
		{25, "z"},
		{26, "aa"},
		{27, "ab"},
		{51, "az"},
		{52, "ba"},
		{701, "zz"},
		{702, "aaa"},
	}

	for _, tc := range tests {
		if got := ColumnName(tc.col); got != tc.name {
			t.Errorf("ColumnName(%d) = %q, want %q", tc.col, got, tc.name)
		}
		col, err := ParseColumnName(tc.name)
		if err != nil {
			t.Fatalf("ParseColumnName(%q): %v", tc.name, err)
		}
		if col != tc.col {
			t.Errorf("ParseColumnName(%q) = %d, want %d", tc.name, col, tc.col)
		}
	}
}

func TestColumnNameRoundTrip(t *testing.T) {
	for col := 0; col < 2000; col++ {
		got, err := ParseColumnName(ColumnName(col))
		if err != nil || got != col {
			t.Fatalf("round trip of column %d gave %d (%v)", col, got, err)
		}
	}
}

func TestSquareNames(t *testing.T) {
	tests := []struct {
		name string
		rows int
		cols int
		sq   Square
	}{
		{"a1", 8, 8, Square{7, 0}},
		{"h8", 8, 8, Square{0, 7}},
		{"e4", 8, 8, Square{4, 4}},
		{"a10", 10, 3, Square{0, 0}},
		{"ab3", 5, 30, Square{2, 27}},
	}

	for _, tc := range tests {
		sq, err := ParseSquareName(tc.name, tc.rows, tc.cols)
		if err != nil {
			t.Fatalf("ParseSquareName(%q): %v", tc.name, err)
		}
		if sq != tc.sq {
			t.Errorf("ParseSquareName(%q) = %+v, want %+v", tc.name, sq, tc.sq)
		}
		if got := tc.sq.Name(tc.rows); got != tc.name {
			t.Errorf("Name(%+v) = %q, want %q", tc.sq, got, tc.name)
		}
	}
}

func TestParseSquareNameInvalid(t *testing.T) {
	for _, name := range []string{"", "e", "4", "E4", "i1", "a9", "a0", "e4x", "-a1"} {
		if _, err := ParseSquareName(name, 8, 8); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquareName(%q) error = %v, want ErrInvalidSquare", name, err)
		}
	}
}

func TestIsLightSquare(t *testing.T) {
	tests := []struct {
		name  string
		light bool
	}{
		{"a1", false},
		{"h1", true},
		{"a8", true},
		{"h8", false},
		{"e4", true},
		{"d4", false},
	}
	for _, tc := range tests {
		s, err := ParseSquareName(tc.name, 8, 8)
		if err != nil {
			t.Fatal(err)
		}
		if got := IsLightSquare(8, 8, s); got != tc.light {
			t.Errorf("IsLightSquare(%s) = %v, want %v", tc.name, got, tc.light)
		}
	}

	// The first square of the far-right file is light whatever the parity.
	for _, dims := range [][2]int{{7, 5}, {6, 9}, {1, 1}, {3, 4}} {
		rows, cols := dims[0], dims[1]
		corner := Square{Row: rows - 1, Col: cols - 1}
		if !IsLightSquare(rows, cols, corner) {
			t.Errorf("bottom-right of %dx%d should be light", rows, cols)
		}
		if cols > 1 && IsLightSquare(rows, cols, corner.Add(0, -1)) {
			t.Errorf("neighbour of the corner on %dx%d should be dark", rows, cols)
		}
	}
}
