package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/talgya/hexwar/internal/world"
)

// action is one line of a move script: either a pass or a move.
type action struct {
	line int
	pass bool
	move world.Move
}

// parseScript reads a move script. Each non-blank line is "pass" or
// "x1 y1 x2 y2"; text after '#' is ignored.
func parseScript(r io.Reader) ([]action, error) {
	var actions []action
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		if len(fields) == 1 && strings.EqualFold(fields[0], "pass") {
			actions = append(actions, action{line: line, pass: true})
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: want \"pass\" or four coordinates, got %q", line, strings.TrimSpace(text))
		}

		var n [4]int
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			n[i] = v
		}
		actions = append(actions, action{line: line, move: world.Move{
			From: world.Coord{X: n[0], Y: n[1]},
			To:   world.Coord{X: n[2], Y: n[3]},
		}})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return actions, nil
}
