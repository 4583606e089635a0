package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// readInput reads one observation per line from r. Each line holds
// one or two whitespace-separated numbers; every line must have the
// same number of columns. Blank lines and lines starting with # are
// skipped. ys is nil for one-column input.
func readInput(r io.Reader) (xs, ys []float64, err error) {
	scanner := bufio.NewScanner(r)
	cols := 0
	line := 0
	for scanner.Scan() {
		line++
		l := strings.TrimSpace(scanner.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		fields := strings.Fields(l)
		if cols == 0 {
			cols = len(fields)
			if cols > 2 {
				return nil, nil, fmt.Errorf("line %d: want 1 or 2 columns, got %d", line, cols)
			}
		} else if len(fields) != cols {
			return nil, nil, fmt.Errorf("line %d: want %d columns, got %d", line, cols, len(fields))
		}

		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		xs = append(xs, x)
		if cols == 2 {
			y, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			ys = append(ys, y)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if len(xs) == 0 {
		return nil, nil, fmt.Errorf("no samples")
	}
	return xs, ys, nil
}
