package ecs

import (
	"sync"
	"time"
)

// SchedulerStats summarizes scheduler execution so far.
type SchedulerStats struct {
	SystemCount     int
	WaveCount       int
	Workers         int
	TotalPasses     int64
	TotalPassTime   time.Duration
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds execution timing for a single system.
type SystemStats struct {
	Name           string
	Wave           int
	Exclusive      bool
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// systemStatsInternal accumulates timings. Systems in the same wave record
// concurrently, so the counters are guarded.
type systemStatsInternal struct {
	mu             sync.Mutex
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (st *systemStatsInternal) record(d time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.executionCount++
	st.lastDuration = d
	st.totalDuration += d
	if d < st.minDuration {
		st.minDuration = d
	}
	if d > st.maxDuration {
		st.maxDuration = d
	}
}

// Stats returns a snapshot of the scheduler's execution statistics. Wave
// numbers are only meaningful after compilation.
func (s *Scheduler) Stats() *SchedulerStats {
	waveOf := make(map[string]int, len(s.nodes))
	for i, wave := range s.waves {
		for _, idx := range wave {
			waveOf[s.nodes[idx].name] = i
		}
	}

	stats := &SchedulerStats{
		SystemCount:   len(s.nodes),
		WaveCount:     len(s.waves),
		Workers:       s.workers,
		TotalPasses:   int64(s.passCount),
		TotalPassTime: s.totalPass,
		Systems:       make([]SystemStats, len(s.nodes)),
	}

	var totalExecs int64
	for i, node := range s.nodes {
		node.stats.mu.Lock()
		avg := time.Duration(0)
		if node.stats.executionCount > 0 {
			avg = node.stats.totalDuration / time.Duration(node.stats.executionCount)
		}
		stats.Systems[i] = SystemStats{
			Name:           node.name,
			Wave:           waveOf[node.name],
			Exclusive:      node.exclusive,
			ExecutionCount: node.stats.executionCount,
			MinDuration:    node.stats.minDuration,
			MaxDuration:    node.stats.maxDuration,
			AvgDuration:    avg,
			LastDuration:   node.stats.lastDuration,
			TotalDuration:  node.stats.totalDuration,
		}
		totalExecs += node.stats.executionCount
		node.stats.mu.Unlock()
	}
	stats.TotalExecutions = totalExecs
	return stats
}
