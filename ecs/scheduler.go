package ecs

import (
	"context"
	"reflect"
	"runtime"
	"strings"
	"time"
)

// SchedulerStats provides statistics about system execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Handle         SystemHandle
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type registeredSystem struct {
	handle SystemHandle
	name   string
	system System
	stats  systemStatsInternal
}

// scheduler keeps systems in registration order. The slice is replaced, never
// edited in place, so a frame already iterating an older slice is unaffected
// by registrations made while it runs.
type scheduler struct {
	systems    []*registeredSystem
	nextHandle SystemHandle
}

func newScheduler() *scheduler {
	return &scheduler{
		systems: make([]*registeredSystem, 0),
	}
}

func (s *scheduler) add(system System) *registeredSystem {
	s.nextHandle++
	entry := &registeredSystem{
		handle: s.nextHandle,
		name:   systemName(system),
		system: system,
		stats: systemStatsInternal{
			minDuration: time.Duration(1<<63 - 1),
		},
	}

	next := make([]*registeredSystem, len(s.systems), len(s.systems)+1)
	copy(next, s.systems)
	s.systems = append(next, entry)
	return entry
}

func (s *scheduler) remove(handle SystemHandle) *registeredSystem {
	for i, entry := range s.systems {
		if entry.handle != handle {
			continue
		}
		next := make([]*registeredSystem, 0, len(s.systems)-1)
		next = append(next, s.systems[:i]...)
		next = append(next, s.systems[i+1:]...)
		s.systems = next
		return entry
	}
	return nil
}

func (s *scheduler) once(w *World, dt float64) {
	systems := s.systems

	for _, entry := range systems {
		start := time.Now()
		entry.system.Execute(w, dt)
		duration := time.Since(start)

		stats := &entry.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

func (s *scheduler) getStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, entry := range s.systems {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Handle:         entry.handle,
			Name:           entry.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

func systemName(system System) string {
	if named, ok := system.(NamedSystem); ok {
		return named.Name()
	}

	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Func {
		name := runtime.FuncForPC(value.Pointer()).Name()
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		return name
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Run calls Update repeatedly at the given interval until ctx is cancelled. dt
// is the wall-clock time since the previous tick.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			w.Update(dt)
		}
	}
}
