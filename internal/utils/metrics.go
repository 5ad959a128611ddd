package utils

import (
	"sync"
	"time"
)

// Tracks performance metrics across the system
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time
}

// OperationStats summarizes recorded latencies for one operation.
type OperationStats struct {
	Count     int     `json:"count"`
	AverageMs float64 `json:"averageMs"`
	MaxMs     float64 `json:"maxMs"`
}

// MetricsSnapshot is the read-only view served by the metrics endpoint.
type MetricsSnapshot struct {
	Requests      uint64                    `json:"requests"`
	Errors        uint64                    `json:"errors"`
	UptimeSeconds float64                   `json:"uptimeSeconds"`
	Operations    map[string]OperationStats `json:"operations"`
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string][]int64),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.operationTimes[operationName]; !exists {
		mc.operationTimes[operationName] = make([]int64, 0)
	}
	mc.operationTimes[operationName] = append(
		mc.operationTimes[operationName],
		duration.Nanoseconds(),
	)
}

func (mc *MetricsCollector) Snapshot() MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	ops := make(map[string]OperationStats, len(mc.operationTimes))
	for name, times := range mc.operationTimes {
		var sum, max int64
		for _, t := range times {
			sum += t
			if t > max {
				max = t
			}
		}
		stats := OperationStats{Count: len(times)}
		if len(times) > 0 {
			stats.AverageMs = float64(sum) / float64(len(times)) / 1e6
			stats.MaxMs = float64(max) / 1e6
		}
		ops[name] = stats
	}

	return MetricsSnapshot{
		Requests:      mc.requestCount,
		Errors:        mc.errorCount,
		UptimeSeconds: time.Since(mc.systemStartTime).Seconds(),
		Operations:    ops,
	}
}
