// Package traj reads trajectory files in the XYZ frame layout: an atom
// count line, a comment line, then one "Symbol X Y Z" row per atom, with
// frames concatenated back to back. A relaxation run appends one frame per
// ionic step, so the last frame is the converged structure.
package traj

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Atom is one atom in a structure
type Atom struct {
	Symbol  string
	X, Y, Z float64
}

// AtomicStructure is a single frame of a trajectory
type AtomicStructure struct {
	Comment string
	Atoms   []Atom
}

// Formula returns the chemical formula with element counts in alphabetical
// order, e.g. "H2O" for two hydrogens and an oxygen.
func (s *AtomicStructure) Formula() string {
	counts := map[string]int{}
	for _, a := range s.Atoms {
		counts[a.Symbol]++
	}
	symbols := make([]string, 0, len(counts))
	for sym := range counts {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var b strings.Builder
	for _, sym := range symbols {
		b.WriteString(sym)
		if counts[sym] > 1 {
			fmt.Fprintf(&b, "%d", counts[sym])
		}
	}
	return b.String()
}

// ReadStructure reads the first frame of the trajectory at path
func ReadStructure(path string) (*AtomicStructure, error) {
	frames, err := readFrames(path, 1)
	if err != nil {
		return nil, err
	}
	return frames[0], nil
}

// ReadLastStructure reads the final frame of the trajectory at path
func ReadLastStructure(path string) (*AtomicStructure, error) {
	frames, err := readFrames(path, -1)
	if err != nil {
		return nil, err
	}
	return frames[len(frames)-1], nil
}

// readFrames parses frames from path. limit bounds how many frames are
// read; negative means all of them.
func readFrames(path string, limit int) ([]*AtomicStructure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open trajectory")
	}
	defer f.Close()

	var frames []*AtomicStructure
	scanner := bufio.NewScanner(f)
	lineNum := 0

	nextLine := func() (string, bool) {
		for scanner.Scan() {
			lineNum++
			return scanner.Text(), true
		}
		return "", false
	}

	for limit < 0 || len(frames) < limit {
		countLine, ok := nextLine()
		if !ok {
			break
		}
		if strings.TrimSpace(countLine) == "" {
			continue
		}

		natoms, err := strconv.Atoi(strings.TrimSpace(countLine))
		if err != nil || natoms < 0 {
			return nil, fmt.Errorf("%s:%d: expected atom count, got %q", path, lineNum, countLine)
		}

		comment, ok := nextLine()
		if !ok {
			return nil, fmt.Errorf("%s:%d: truncated frame header", path, lineNum)
		}

		frame := &AtomicStructure{Comment: comment, Atoms: make([]Atom, 0, natoms)}
		for range natoms {
			line, ok := nextLine()
			if !ok {
				return nil, fmt.Errorf("%s:%d: truncated frame, want %d atoms got %d",
					path, lineNum, natoms, len(frame.Atoms))
			}
			atom, err := parseAtom(line)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %v", path, lineNum, err)
			}
			frame.Atoms = append(frame.Atoms, atom)
		}
		frames = append(frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "read trajectory")
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%s: no frames", path)
	}
	return frames, nil
}

func parseAtom(line string) (Atom, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Atom{}, fmt.Errorf("malformed atom line %q", line)
	}
	var coords [3]float64
	for i, field := range fields[1:4] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Atom{}, fmt.Errorf("malformed coordinate %q", field)
		}
		coords[i] = v
	}
	return Atom{Symbol: fields[0], X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
