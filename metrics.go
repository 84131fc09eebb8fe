package grago

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    allocCounter  prometheus.Counter
//	    snapHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordAlloc(bytes int, err error) {
//	    p.allocCounter.Inc()
//	    // ... record error state, size, etc.
//	}
type MetricsCollector interface {
	// RecordAlloc is called after each allocation request.
	// bytes is the requested size, err is nil if successful.
	RecordAlloc(bytes int, err error)

	// RecordFree is called after each release of container memory.
	RecordFree(bytes int)

	// RecordSnapshotWrite is called after each snapshot write.
	// bytes is the encoded size, duration is the total time taken.
	RecordSnapshotWrite(bytes int64, duration time.Duration, err error)

	// RecordSnapshotRead is called after each snapshot read.
	RecordSnapshotRead(bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlloc(int, error)                          {}
func (NoopMetricsCollector) RecordFree(int)                                  {}
func (NoopMetricsCollector) RecordSnapshotWrite(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordSnapshotRead(int64, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount      atomic.Int64
	AllocBytes      atomic.Int64
	AllocErrors     atomic.Int64
	FreeCount       atomic.Int64
	FreeBytes       atomic.Int64
	SnapWriteCount  atomic.Int64
	SnapWriteBytes  atomic.Int64
	SnapWriteErrors atomic.Int64
	SnapWriteNanos  atomic.Int64
	SnapReadCount   atomic.Int64
	SnapReadBytes   atomic.Int64
	SnapReadErrors  atomic.Int64
	SnapReadNanos   atomic.Int64
}

// RecordAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(bytes int, err error) {
	b.AllocCount.Add(1)
	b.AllocBytes.Add(int64(bytes))
	if err != nil {
		b.AllocErrors.Add(1)
	}
}

// RecordFree implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(bytes int) {
	b.FreeCount.Add(1)
	b.FreeBytes.Add(int64(bytes))
}

// RecordSnapshotWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotWrite(bytes int64, duration time.Duration, err error) {
	b.SnapWriteCount.Add(1)
	b.SnapWriteBytes.Add(bytes)
	b.SnapWriteNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapWriteErrors.Add(1)
	}
}

// RecordSnapshotRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotRead(bytes int64, duration time.Duration, err error) {
	b.SnapReadCount.Add(1)
	b.SnapReadBytes.Add(bytes)
	b.SnapReadNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapReadErrors.Add(1)
	}
}
