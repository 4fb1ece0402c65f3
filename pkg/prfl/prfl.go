// Package prfl reads dike profiles from PRFL files.
//
// A PRFL file is a keyword-per-line text layout. The reader uses the version line
// ("VERSIE 4.0"), the orientation line ("RICHTING <degrees>") and the dike block:
// "DIJK <n>" followed by n rows of "x z roughness". The roughness on the last row is ignored.
package prfl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/chrissnell/dikeprep/internal/profile"
)

// SupportedVersion is the only PRFL version the reader accepts
const SupportedVersion = 4.0

var (
	ErrFileNotFound         = errors.New("prfl file could not be found")
	ErrEmptyFile            = errors.New("prfl file should not be empty")
	ErrWrongVersion         = errors.New("prfl version should be 4.0")
	ErrNoVersion            = errors.New("no valid prfl version was found")
	ErrNoOrientation        = errors.New("no valid orientation was found")
	ErrNoDikeProfile        = errors.New("no dike profile was found")
	ErrIncorrectCoordinates = errors.New("dike profile coordinates or roughnesses could not be read")
)

// Read parses the PRFL file at path
func Read(path string) (*profile.Schematization, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads a PRFL profile. The outer toe is the most seaward point and the outer crest is
// the last point of the rising part of the profile.
func Parse(r io.Reader) (*profile.Schematization, error) {
	var lines [][]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.Fields(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	version, ok := keywordValue(lines, "VERSIE")
	if !ok {
		return nil, ErrNoVersion
	}
	if version != SupportedVersion {
		return nil, fmt.Errorf("%w (found %g)", ErrWrongVersion, version)
	}

	orientation, ok := keywordValue(lines, "RICHTING")
	if !ok {
		return nil, ErrNoOrientation
	}

	x, z, roughnesses, err := readCoordinates(lines)
	if err != nil {
		return nil, err
	}

	points := profile.CharacteristicPoints{
		OuterToe:   floats.Min(x),
		OuterCrest: x[outerCrest(z)],
	}
	return profile.New(orientation, x, z, roughnesses, points)
}

func findLine(lines [][]string, keyword string) int {
	for i, line := range lines {
		if len(line) > 1 && line[0] == keyword {
			return i
		}
	}
	return -1
}

func keywordValue(lines [][]string, keyword string) (float64, bool) {
	i := findLine(lines, keyword)
	if i < 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(lines[i][1], 64)
	return v, err == nil
}

func readCoordinates(lines [][]string) (x, z, roughnesses []float64, err error) {
	i := findLine(lines, "DIJK")
	if i < 0 {
		return nil, nil, nil, ErrNoDikeProfile
	}
	n, err := strconv.Atoi(lines[i][1])
	if err != nil || n < 1 {
		return nil, nil, nil, ErrNoDikeProfile
	}

	start := i + 1
	if start+n > len(lines) {
		return nil, nil, nil, fmt.Errorf("%w: expected %d rows, found %d", ErrIncorrectCoordinates, n, len(lines)-start)
	}

	for k := start; k < start+n; k++ {
		row := lines[k]
		last := k == start+n-1
		if len(row) < 2 || (!last && len(row) < 3) {
			return nil, nil, nil, fmt.Errorf("%w: line %d", ErrIncorrectCoordinates, k+1)
		}

		values := make([]float64, 0, 3)
		for _, field := range row[:min(len(row), 3)] {
			v, perr := strconv.ParseFloat(field, 64)
			if perr != nil {
				return nil, nil, nil, fmt.Errorf("%w: line %d: %q", ErrIncorrectCoordinates, k+1, field)
			}
			values = append(values, v)
		}

		x = append(x, values[0])
		z = append(z, values[1])
		if !last {
			roughnesses = append(roughnesses, values[2])
		}
	}
	return x, z, roughnesses, nil
}

// outerCrest returns the index of the last point of the leading non-decreasing run
func outerCrest(z []float64) int {
	crest := 0
	for i := 1; i < len(z); i++ {
		if z[i] < z[i-1] {
			break
		}
		crest = i
	}
	return crest
}
