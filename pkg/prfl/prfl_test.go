package prfl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const reference = `VERSIE 4.0
ID Dijkvak 12

RICHTING 15.5

DAM 0
DAMHOOGTE 0

DIJK 5
-10.000 -2.000 1.000
0.000 0.000 0.900
15.000 5.000 0.800
20.000 6.500 1.000
35.000 1.000 1.000

MEMO
reference profile
`

func TestParse(t *testing.T) {
	s, err := Parse(strings.NewReader(reference))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Orientation != 15.5 {
		t.Errorf("orientation %g, want 15.5", s.Orientation)
	}
	wantX := []float64{-10, 0, 15, 20, 35}
	wantZ := []float64{-2, 0, 5, 6.5, 1}
	wantR := []float64{1, 0.9, 0.8, 1}
	for i := range wantX {
		if s.XPositions[i] != wantX[i] || s.ZPositions[i] != wantZ[i] {
			t.Errorf("point %d is (%g, %g), want (%g, %g)", i, s.XPositions[i], s.ZPositions[i], wantX[i], wantZ[i])
		}
	}
	if len(s.Roughnesses) != len(wantR) {
		t.Fatalf("roughnesses %v, want %v", s.Roughnesses, wantR)
	}
	for i := range wantR {
		if s.Roughnesses[i] != wantR[i] {
			t.Errorf("roughnesses %v, want %v", s.Roughnesses, wantR)
			break
		}
	}
	if s.Points.OuterToe != -10 {
		t.Errorf("outer toe %g, want -10", s.Points.OuterToe)
	}
	if s.Points.OuterCrest != 20 {
		t.Errorf("outer crest %g, want 20", s.Points.OuterCrest)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"empty", "", ErrEmptyFile},
		{"no version", "RICHTING 0\nDIJK 2\n0 0 1\n1 1\n", ErrNoVersion},
		{"unparsable version", "VERSIE vier\n", ErrNoVersion},
		{"wrong version", "VERSIE 3.0\nRICHTING 0\n", ErrWrongVersion},
		{"no orientation", "VERSIE 4.0\nDIJK 2\n0 0 1\n1 1\n", ErrNoOrientation},
		{"no dike", "VERSIE 4.0\nRICHTING 0\n", ErrNoDikeProfile},
		{"too few rows", "VERSIE 4.0\nRICHTING 0\nDIJK 3\n0 0 1\n1 1\n", ErrIncorrectCoordinates},
		{"missing roughness", "VERSIE 4.0\nRICHTING 0\nDIJK 2\n0 0\n1 1\n", ErrIncorrectCoordinates},
		{"bad number", "VERSIE 4.0\nRICHTING 0\nDIJK 2\n0 x 1\n1 1\n", ErrIncorrectCoordinates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dike.prfl")
	if err := os.WriteFile(path, []byte(reference), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := Read(filepath.Join(t.TempDir(), "missing.prfl")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}
