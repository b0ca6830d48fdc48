// Package hyphen reconstructs words broken across two lines by a hyphen.
//
// A line ending with "-" continues on a line below it; a line starting with "-"
// continues a line above it. The continuation is found geometrically: the first
// line in input order, in the right direction, whose box overlaps the hyphenated
// line's box once the vertical test is loosened by half the hyphenated line's height.
package hyphen

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/chapterdex/internal/domain/geometry"
	"github.com/kailas-cloud/chapterdex/internal/domain/token"
)

// Direction is where the continuation of a hyphenated line is searched.
type Direction string

// Search directions.
const (
	Below Direction = "below"
	Above Direction = "above"
)

// Line is the view of a recognized line the resolver needs.
type Line struct {
	Text    string
	Corners []geometry.Point
	Words   []string
}

// Result is the outcome of resolving one hyphen.
type Result struct {
	Direction Direction
	Matched   bool
	Candidate int      // index of the continuation line, -1 when unmatched
	Tokens    []string // normalized joined keys, possibly empty even when matched
}

// Directions returns the directions a line's text asks to be resolved in.
// A line that both starts and ends with a hyphen is resolved both ways.
func Directions(text string) []Direction {
	var dirs []Direction
	if strings.HasSuffix(text, "-") {
		dirs = append(dirs, Below)
	}
	if strings.HasPrefix(text, "-") {
		dirs = append(dirs, Above)
	}
	return dirs
}

// Resolve finds the continuation of lines[idx] in direction dir and builds the joined keys.
// It returns an ErrMalformedGeometry-wrapped error when the hyphenated line's polygon does
// not have exactly four corners. Candidates with malformed polygons are passed over.
func Resolve(lines []Line, idx int, dir Direction) (Result, error) {
	res := Result{Direction: dir, Candidate: -1}
	if idx < 0 || idx >= len(lines) {
		return res, fmt.Errorf("line index %d out of range [0,%d)", idx, len(lines))
	}

	hyphenated := lines[idx]
	box, err := geometry.BoxFromCorners(hyphenated.Corners)
	if err != nil {
		return res, fmt.Errorf("hyphenated line %q: %w", hyphenated.Text, err)
	}
	slack := box.Height() / 2

	for i, candidate := range lines {
		cbox, err := geometry.BoxFromCorners(candidate.Corners)
		if err != nil {
			continue
		}
		if cbox.TopLeft == box.TopLeft {
			continue
		}

		switch dir {
		case Below:
			if cbox.TopLeft.Y <= box.TopLeft.Y {
				continue
			}
			if !geometry.Overlaps(box, cbox, slack) {
				continue
			}
			res.Tokens = Join(last(hyphenated.Words), first(candidate.Words))
		case Above:
			if cbox.TopLeft.Y >= box.TopLeft.Y {
				continue
			}
			if !geometry.Overlaps(cbox, box, slack) {
				continue
			}
			res.Tokens = Join(last(candidate.Words), first(hyphenated.Words))
		default:
			return res, fmt.Errorf("unknown direction %q", dir)
		}

		res.Matched = true
		res.Candidate = i
		return res, nil
	}

	return res, nil
}

// Join builds the keys for a word split into head (before the break) and tail (after it).
// It yields the hyphen-preserving form HEAD-TAIL unless the tail never keeps a hyphen,
// and the hyphen-stripped form HEADTAIL unless the tail always keeps one.
func Join(head, tail string) []string {
	headKey := token.Normalize(strings.TrimRight(head, "-"))
	tailKey := token.Normalize(strings.TrimLeft(tail, "-"))
	if headKey == "" || tailKey == "" {
		return nil
	}

	check := token.Autocorrect(token.TrimHyphens(token.StripPunctuation(tail)))

	var out []string
	if !token.NeverHyphenate(check) {
		if k := token.Normalize(headKey + "-" + tailKey); k != "" {
			out = append(out, k)
		}
	}
	if !token.MustHyphenate(check) {
		if k := token.Normalize(headKey + tailKey); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func first(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

func last(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}
