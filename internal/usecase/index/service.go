package index

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/chapterdex/internal/domain/batch"
	"github.com/kailas-cloud/chapterdex/internal/domain/chapter"
	"github.com/kailas-cloud/chapterdex/internal/domain/master"
	"github.com/kailas-cloud/chapterdex/internal/domain/ocr"
	"github.com/kailas-cloud/chapterdex/internal/metrics"
)

// Service builds chapter indexes and folds them into the master index.
// It assumes it is the only writer of the master index.
type Service struct {
	chapters ChapterStore
	master   MasterStore
	stage    func() StagedMaster
	exclude  map[string]struct{}
	logger   *zap.Logger
}

// New creates an indexing service.
func New(chapters ChapterStore, m MasterStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		chapters: chapters,
		master:   m,
		exclude:  map[string]struct{}{},
		logger:   logger,
	}
}

// WithStaging makes RegenerateAll rebuild into a staged copy and swap it in at
// the end, instead of deleting the live master index first.
func (s *Service) WithStaging(stage func() StagedMaster) *Service {
	s.stage = stage
	return s
}

// WithExclude skips the given files when enumerating chapter documents, e.g. a
// file-backed master index living in the chapter directory.
func (s *Service) WithExclude(paths ...string) *Service {
	for _, p := range paths {
		if p == "" {
			continue
		}
		s.exclude[cleanPath(p)] = struct{}{}
	}
	return s
}

// Build indexes one chapter from its pages in reading order. Page numbers are
// input positions starting at 1. A page that cannot be parsed is dropped and
// reported, and still consumes its page number.
func (s *Service) Build(ctx context.Context, num float64, pages []ocr.Source) (*chapter.Index, []dombatch.Result, error) {
	if err := chapter.Validate(num); err != nil {
		return nil, nil, err
	}
	start := time.Now()
	defer func() { metrics.ChapterBuildDuration.Observe(time.Since(start).Seconds()) }()

	idx := chapter.New(num)
	results := make([]dombatch.Result, 0, len(pages))

	for i, src := range pages {
		if err := ctx.Err(); err != nil {
			return nil, results, err
		}
		pageNum := i + 1
		id := pageID(src, pageNum)

		raw := src.Data
		err := src.Err
		var page ocr.Page
		if err == nil {
			page, err = ocr.ParsePage(raw)
		}
		if err != nil {
			metrics.PagesTotal.WithLabelValues(string(dombatch.StatusError)).Inc()
			s.logger.Error("skipping page",
				zap.Float64("chapter", num),
				zap.Int("page", pageNum),
				zap.String("source", src.Name),
				zap.Error(err),
			)
			results = append(results, dombatch.NewError(id, err))
			continue
		}

		rec, lines := formatPage(page, pageNum)
		idx.Pages = append(idx.Pages, rec)
		if warn := s.indexLines(idx.Words, pageNum, lines); warn != nil {
			metrics.PagesTotal.WithLabelValues(string(dombatch.StatusWarning)).Inc()
			results = append(results, dombatch.NewWarning(id, warn))
			continue
		}
		metrics.PagesTotal.WithLabelValues(string(dombatch.StatusOK)).Inc()
		results = append(results, dombatch.NewOK(id))
	}

	s.logger.Info("chapter built",
		zap.Float64("chapter", num),
		zap.Int("pages", len(idx.Pages)),
		zap.Int("words", len(idx.Words)),
	)
	return idx, results, nil
}

// Index builds a chapter, writes its document to path and merges it into the master index.
func (s *Service) Index(
	ctx context.Context, num float64, pages []ocr.Source, path string,
) (*chapter.Index, []dombatch.Result, error) {
	idx, results, err := s.Build(ctx, num, pages)
	if err != nil {
		return nil, results, err
	}
	if err := s.chapters.Save(ctx, path, idx); err != nil {
		return idx, results, fmt.Errorf("save chapter %s: %w", path, err)
	}
	s.logger.Info("chapter saved", zap.String("path", path))
	if err := s.Merge(ctx, idx); err != nil {
		return idx, results, err
	}
	return idx, results, nil
}

// Merge folds one chapter into the master index and saves it.
func (s *Service) Merge(ctx context.Context, idx *chapter.Index) error {
	return s.mergeInto(ctx, s.master, idx)
}

// MergeFile loads the chapter document at path and merges it.
func (s *Service) MergeFile(ctx context.Context, path string) error {
	idx, err := s.chapters.Load(ctx, path)
	if err != nil {
		return err
	}
	return s.Merge(ctx, idx)
}

// BulkMerge merges every chapter document in dir in file-name order. Documents
// that cannot be loaded are reported and skipped; a master index that cannot
// be loaded aborts the batch.
func (s *Service) BulkMerge(ctx context.Context, dir string) ([]dombatch.Result, error) {
	paths, err := s.list(ctx, dir)
	if err != nil {
		return nil, err
	}

	results := make([]dombatch.Result, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		id := filepath.Base(path)
		idx, err := s.chapters.Load(ctx, path)
		if err != nil {
			results = append(results, s.docError("bulk", id, err))
			continue
		}
		if err := s.Merge(ctx, idx); err != nil {
			results = append(results, s.docError("bulk", id, err))
			if isLoadError(err) {
				return results, err
			}
			continue
		}
		metrics.DocumentsTotal.WithLabelValues("bulk", string(dombatch.StatusOK)).Inc()
		results = append(results, dombatch.NewOK(id))
	}
	return results, nil
}

// Regenerate discards the chapter's word map and rebuilds it from the stored
// page geometry with the current normalization and hyphen rules.
func (s *Service) Regenerate(idx *chapter.Index) error {
	idx.ResetWords()
	var warnings []error
	for _, page := range idx.Pages {
		if err := s.indexLines(idx.Words, page.Page, storedLines(page)); err != nil {
			warnings = append(warnings, err)
		}
	}
	return errors.Join(warnings...)
}

// RegenerateAll regenerates every chapter document in dir in place and then
// rebuilds the master index from scratch out of the regenerated chapters.
//
// With staging configured the rebuild goes to a side copy that replaces the
// live index only once every chapter has been merged, so an interrupted run
// leaves the previous master intact. Without it the live index is deleted up
// front.
func (s *Service) RegenerateAll(ctx context.Context, dir string) ([]dombatch.Result, error) {
	paths, err := s.list(ctx, dir)
	if err != nil {
		return nil, err
	}

	var (
		target MasterStore
		staged StagedMaster
	)
	if s.stage != nil {
		staged = s.stage()
		if err := staged.Save(ctx, master.New()); err != nil {
			return nil, fmt.Errorf("reset staged master: %w", err)
		}
		target = staged
	} else {
		if err := s.master.Delete(ctx); err != nil {
			return nil, fmt.Errorf("delete master: %w", err)
		}
		target = s.master
	}

	results := make([]dombatch.Result, 0, len(paths))
	regenerated := make([]*chapter.Index, 0, len(paths))
	ids := make([]string, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		id := filepath.Base(path)
		idx, err := s.chapters.Load(ctx, path)
		if err != nil {
			results = append(results, s.docError("regenerate", id, err))
			continue
		}
		if warn := s.Regenerate(idx); warn != nil {
			s.logger.Warn("chapter regenerated with skipped hyphen joins",
				zap.String("document", id), zap.Error(warn))
		}
		if err := s.chapters.Save(ctx, path, idx); err != nil {
			results = append(results, s.docError("regenerate", id, err))
			continue
		}
		regenerated = append(regenerated, idx)
		ids = append(ids, id)
	}

	for i, idx := range regenerated {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if err := s.mergeInto(ctx, target, idx); err != nil {
			results = append(results, s.docError("regenerate", ids[i], err))
			if isLoadError(err) {
				return results, err
			}
			continue
		}
		metrics.DocumentsTotal.WithLabelValues("regenerate", string(dombatch.StatusOK)).Inc()
		results = append(results, dombatch.NewOK(ids[i]))
	}

	if staged != nil {
		if err := staged.Commit(ctx); err != nil {
			return results, fmt.Errorf("commit regenerated master: %w", err)
		}
	}
	s.logger.Info("master regenerated",
		zap.Int("chapters", len(regenerated)),
		zap.Bool("staged", staged != nil),
	)
	return results, nil
}

// RemoveChapter drops a chapter from the master index. It returns how many
// words referenced the chapter.
func (s *Service) RemoveChapter(ctx context.Context, num float64) (int, error) {
	if err := chapter.Validate(num); err != nil {
		return 0, err
	}
	m, err := s.master.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load master: %w", err)
	}
	key := chapter.Key(num)
	n := m.RemoveChapter(key)
	if err := s.master.Save(ctx, m); err != nil {
		return n, fmt.Errorf("save master: %w", err)
	}
	metrics.MasterWords.Set(float64(len(m.Words)))
	s.logger.Info("chapter removed from master",
		zap.String("chapter_key", key),
		zap.Int("words", n),
	)
	return n, nil
}

func (s *Service) mergeInto(ctx context.Context, store MasterStore, idx *chapter.Index) error {
	m, err := store.Load(ctx)
	if err != nil {
		metrics.MergesTotal.WithLabelValues(string(dombatch.StatusError)).Inc()
		return &loadError{err: err}
	}
	key := idx.Key()
	added := m.Merge(key, idx.Words)
	if err := store.Save(ctx, m); err != nil {
		metrics.MergesTotal.WithLabelValues(string(dombatch.StatusError)).Inc()
		return fmt.Errorf("save master: %w", err)
	}
	metrics.MergesTotal.WithLabelValues(string(dombatch.StatusOK)).Inc()
	metrics.MasterWords.Set(float64(len(m.Words)))
	s.logger.Info("chapter merged",
		zap.String("chapter_key", key),
		zap.Int("chapter_words", len(idx.Words)),
		zap.Int("pages_added", added),
		zap.Int("master_words", len(m.Words)),
	)
	return nil
}

func (s *Service) list(ctx context.Context, dir string) ([]string, error) {
	paths, err := s.chapters.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	out := paths[:0]
	for _, p := range paths {
		if _, skip := s.exclude[cleanPath(p)]; skip {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) docError(op, id string, err error) dombatch.Result {
	metrics.DocumentsTotal.WithLabelValues(op, string(dombatch.StatusError)).Inc()
	s.logger.Error("chapter document failed",
		zap.String("operation", op),
		zap.String("document", id),
		zap.Error(err),
	)
	return dombatch.NewError(id, err)
}

// loadError marks a master index that could not be loaded; batches stop on it.
type loadError struct {
	err error
}

func (e *loadError) Error() string { return "load master: " + e.err.Error() }
func (e *loadError) Unwrap() error { return e.err }

func isLoadError(err error) bool {
	var le *loadError
	return errors.As(err, &le)
}

func pageID(src ocr.Source, num int) string {
	if src.Name != "" {
		return src.Name
	}
	return "page-" + strconv.Itoa(num)
}

func cleanPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
