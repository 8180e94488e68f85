package service

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsSnapshot is a lightweight view of the counters collected during a run.
type MetricsSnapshot struct {
	LoginsSucceeded  uint64
	LoginsFailed     uint64
	GradesRecorded   uint64
	AttendanceMarked uint64
	ReportsExported  uint64
	CacheHits        uint64
	CacheMisses      uint64
	DBQueryCount     uint64
	AverageDBQueryMs float64
	CacheHitRatio    float64
}

// MetricsService encapsulates Prometheus instrumentation for the console.
type MetricsService struct {
	handler         http.Handler
	loginAttempts   *prometheus.CounterVec
	recordsWritten  *prometheus.CounterVec
	reportsExported *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheHitRatio   prometheus.Gauge
	cacheWrite      prometheus.Observer
	dbQueryDuration *prometheus.HistogramVec

	loginOK              uint64
	loginFailed          uint64
	gradeCount           uint64
	attendanceCount      uint64
	reportCount          uint64
	cacheHitCount        uint64
	cacheMissCount       uint64
	dbQueryCount         uint64
	dbQueryDurationTotal uint64
}

// NewMetricsService registers the console collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	loginAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "academic_login_attempts_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	recordsWritten := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "academic_records_written_total",
		Help: "Grades and attendance marks written",
	}, []string{"kind"})

	reportsExported := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "academic_reports_exported_total",
		Help: "Reports exported by kind",
	}, []string{"kind"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "academic_cache_hits_total",
		Help: "Total report cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "academic_cache_misses_total",
		Help: "Total report cache misses",
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "academic_cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "academic_cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "academic_db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	registry.MustRegister(loginAttempts, recordsWritten, reportsExported, cacheHits, cacheMisses, cacheHitRatio, cacheWrite, dbQueryDuration)

	return &MetricsService{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		loginAttempts:   loginAttempts,
		recordsWritten:  recordsWritten,
		reportsExported: reportsExported,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		cacheHitRatio:   cacheHitRatio,
		cacheWrite:      cacheWrite,
		dbQueryDuration: dbQueryDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// RecordLogin counts a login attempt.
func (m *MetricsService) RecordLogin(success bool) {
	if m == nil {
		return
	}
	if success {
		m.loginAttempts.WithLabelValues("success").Inc()
		atomic.AddUint64(&m.loginOK, 1)
		return
	}
	m.loginAttempts.WithLabelValues("failure").Inc()
	atomic.AddUint64(&m.loginFailed, 1)
}

// RecordGrade counts a stored grade.
func (m *MetricsService) RecordGrade() {
	if m == nil {
		return
	}
	m.recordsWritten.WithLabelValues("grade").Inc()
	atomic.AddUint64(&m.gradeCount, 1)
}

// RecordAttendance counts stored attendance marks.
func (m *MetricsService) RecordAttendance(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordsWritten.WithLabelValues("attendance").Add(float64(n))
	atomic.AddUint64(&m.attendanceCount, uint64(n))
}

// RecordReport counts an exported report of the given kind.
func (m *MetricsService) RecordReport(kind string) {
	if m == nil {
		return
	}
	m.reportsExported.WithLabelValues(kind).Inc()
	atomic.AddUint64(&m.reportCount, 1)
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
	atomic.AddUint64(&m.dbQueryCount, 1)
	atomic.AddUint64(&m.dbQueryDurationTotal, uint64(duration.Nanoseconds()))
}

// Snapshot returns the aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	dbCount := atomic.LoadUint64(&m.dbQueryCount)
	dbDuration := atomic.LoadUint64(&m.dbQueryDurationTotal)

	snapshot := MetricsSnapshot{
		LoginsSucceeded:  atomic.LoadUint64(&m.loginOK),
		LoginsFailed:     atomic.LoadUint64(&m.loginFailed),
		GradesRecorded:   atomic.LoadUint64(&m.gradeCount),
		AttendanceMarked: atomic.LoadUint64(&m.attendanceCount),
		ReportsExported:  atomic.LoadUint64(&m.reportCount),
		CacheHits:        hits,
		CacheMisses:      misses,
		DBQueryCount:     dbCount,
	}
	if total := hits + misses; total > 0 {
		snapshot.CacheHitRatio = float64(hits) / float64(total)
	}
	if dbCount > 0 {
		snapshot.AverageDBQueryMs = float64(dbDuration) / float64(dbCount) / float64(time.Millisecond)
	}
	return snapshot
}
