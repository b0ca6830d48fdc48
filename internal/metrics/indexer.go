package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chapterdex"

// Indexer Prometheus metrics.
var (
	PagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_total",
			Help:      "OCR pages processed by chapter builds",
		},
		[]string{"status"}, // "ok" / "warning" / "error"
	)

	HyphenJoinsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hyphen_joins_total",
			Help:      "Hyphenated lines by resolution outcome",
		},
		[]string{"result"}, // "joined" / "unmatched" / "malformed"
	)

	WordsIndexedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_indexed_total",
			Help:      "New (word, page) pairs inserted into chapter word maps",
		},
	)

	MergesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merges_total",
			Help:      "Chapter merges into the master index",
		},
		[]string{"status"},
	)

	DocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Chapter documents handled by batch operations",
		},
		[]string{"operation", "status"},
	)

	MasterWords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "master_words",
			Help:      "Distinct words in the master index after the last save",
		},
	)

	ChapterBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chapter_build_duration_seconds",
			Help:      "Time to build one chapter index from OCR pages",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

var indexerMetricsRegistered bool

// RegisterIndexerMetrics registers the indexer metrics. Must be called once from main.
func RegisterIndexerMetrics() {
	if indexerMetricsRegistered {
		return
	}
	prometheus.MustRegister(PagesTotal)
	prometheus.MustRegister(HyphenJoinsTotal)
	prometheus.MustRegister(WordsIndexedTotal)
	prometheus.MustRegister(MergesTotal)
	prometheus.MustRegister(DocumentsTotal)
	prometheus.MustRegister(MasterWords)
	prometheus.MustRegister(ChapterBuildDuration)
	indexerMetricsRegistered = true
}

// WriteTextfile dumps the default registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
