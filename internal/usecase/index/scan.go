package index

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/chapterdex/internal/domain/chapter"
	"github.com/kailas-cloud/chapterdex/internal/domain/geometry"
	"github.com/kailas-cloud/chapterdex/internal/domain/hyphen"
	"github.com/kailas-cloud/chapterdex/internal/domain/ocr"
	"github.com/kailas-cloud/chapterdex/internal/domain/token"
	"github.com/kailas-cloud/chapterdex/internal/metrics"
)

// formatPage reduces a recognized page to the stored page record and the
// resolver's view of its lines. Lines with malformed polygons keep whatever
// corner pairs exist.
func formatPage(p ocr.Page, num int) (chapter.Page, []hyphen.Line) {
	rec := chapter.Page{Width: p.Width, Height: p.Height, Page: num, Lines: make([]chapter.Line, 0, len(p.Lines))}
	lines := make([]hyphen.Line, 0, len(p.Lines))
	for _, l := range p.Lines {
		corners, _ := geometry.Corners(l.BoundingBox)
		rec.Lines = append(rec.Lines, chapter.Line{Text: l.Text, BoundingBox: corners})

		words := make([]string, 0, len(l.Words))
		for _, w := range l.Words {
			words = append(words, w.Text)
		}
		if len(words) == 0 {
			words = strings.Fields(l.Text)
		}
		lines = append(lines, hyphen.Line{Text: l.Text, Corners: corners, Words: words})
	}
	return rec, lines
}

// storedLines rebuilds the resolver's view from a stored page record. Words are
// the whitespace-separated tokens of the line text.
func storedLines(p chapter.Page) []hyphen.Line {
	lines := make([]hyphen.Line, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, hyphen.Line{Text: l.Text, Corners: l.BoundingBox, Words: strings.Fields(l.Text)})
	}
	return lines
}

// indexLines inserts every word of one page into words, plus the joined forms
// of hyphenated lines. It returns one error per line whose geometry kept the
// hyphen from being resolved; those lines are still indexed word by word.
func (s *Service) indexLines(words chapter.WordMap, page int, lines []hyphen.Line) error {
	var warnings []error
	for i, l := range lines {
		for _, dir := range hyphen.Directions(l.Text) {
			res, err := hyphen.Resolve(lines, i, dir)
			if err != nil {
				metrics.HyphenJoinsTotal.WithLabelValues("malformed").Inc()
				s.logger.Warn("skipping hyphen join",
					zap.Int("page", page),
					zap.Int("line", i),
					zap.String("direction", string(dir)),
					zap.Error(err),
				)
				warnings = append(warnings, err)
				continue
			}
			if !res.Matched {
				metrics.HyphenJoinsTotal.WithLabelValues("unmatched").Inc()
				continue
			}
			metrics.HyphenJoinsTotal.WithLabelValues("joined").Inc()
			for _, tok := range res.Tokens {
				s.insert(words, tok, page)
			}
		}

		for _, w := range l.Words {
			s.insert(words, token.Normalize(w), page)
		}
	}
	return errors.Join(warnings...)
}

func (s *Service) insert(words chapter.WordMap, key string, page int) {
	if words.Insert(key, page) {
		metrics.WordsIndexedTotal.Inc()
	}
}
