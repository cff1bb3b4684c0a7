package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Stage names accepted by ProfiledFunction
const (
	StageColumns = "columns"
	StageSprites = "sprites"
	StageEffects = "effects"
	StageAI      = "ai"
)

// PerformanceMonitor tracks frame and render stage timings
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds
	totalTime  atomic.Uint64

	// Stage metrics, last frame
	columnTime atomic.Uint64
	spriteTime atomic.Uint64
	effectTime atomic.Uint64
	aiTime     atomic.Uint64

	// Per-frame counters
	raysCast       atomic.Uint64
	raysNoWall     atomic.Uint64
	spritesVisible atomic.Int32
	spritePixels   atomic.Uint64

	// Statistics
	mutex        sync.RWMutex
	avgFrameTime float64
	startTime    time.Time

	lowFPSThreshold float64
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor(lowFPSThreshold float64) *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:       time.Now(),
		lowFPSThreshold: lowFPSThreshold,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	frameTime := uint64(time.Since(ft.startTime).Nanoseconds())
	ft.monitor.frameTime.Store(frameTime)
	ft.monitor.totalTime.Add(frameTime)
	count := ft.monitor.frameCount.Add(1)

	ft.monitor.mutex.Lock()
	ft.monitor.avgFrameTime = float64(ft.monitor.totalTime.Load()) / float64(count)
	ft.monitor.mutex.Unlock()
}

// RecordColumns stores the ray counts of the last column pass
func (pm *PerformanceMonitor) RecordColumns(rays, noWall int) {
	pm.raysCast.Store(uint64(rays))
	pm.raysNoWall.Store(uint64(noWall))
}

// RecordSprites stores the sprite count and composited pixels of the last frame
func (pm *PerformanceMonitor) RecordSprites(visible int, pixels int) {
	pm.spritesVisible.Store(int32(visible))
	pm.spritePixels.Store(uint64(pixels))
}

// FrameMetrics is a snapshot of the last frame
type FrameMetrics struct {
	FramesPerSecond float64
	Rays            uint64
	RaysNoWall      uint64
	Sprites         int32
	SpritePixels    uint64
	ColumnTime      time.Duration
	SpriteTime      time.Duration
	EffectTime      time.Duration
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return FrameMetrics{
		FramesPerSecond: pm.FPS(),
		Rays:            pm.raysCast.Load(),
		RaysNoWall:      pm.raysNoWall.Load(),
		Sprites:         pm.spritesVisible.Load(),
		SpritePixels:    pm.spritePixels.Load(),
		ColumnTime:      time.Duration(pm.columnTime.Load()),
		SpriteTime:      time.Duration(pm.spriteTime.Load()),
		EffectTime:      time.Duration(pm.effectTime.Load()),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// FPS derives the frame rate from the last frame time; zero before any frame
func (pm *PerformanceMonitor) FPS() float64 {
	frameTime := pm.frameTime.Load()
	if frameTime == 0 {
		return 0
	}
	return 1000000000.0 / float64(frameTime)
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":    time.Since(pm.startTime).Seconds(),
		"frame_count":       pm.frameCount.Load(),
		"avg_frame_time_ms": pm.avgFrameTime / 1000000,
		"column_time_ms":    float64(pm.columnTime.Load()) / 1000000,
		"sprite_time_ms":    float64(pm.spriteTime.Load()) / 1000000,
		"effect_time_ms":    float64(pm.effectTime.Load()) / 1000000,
		"ai_time_ms":        float64(pm.aiTime.Load()) / 1000000,
		"current_fps":       pm.FPS(),
		"rays":              pm.raysCast.Load(),
		"rays_no_wall":      pm.raysNoWall.Load(),
		"sprites_visible":   pm.spritesVisible.Load(),
		"sprite_pixels":     pm.spritePixels.Load(),
		"memory_alloc_mb":   memStats.Alloc / 1024 / 1024,
		"memory_sys_mb":     memStats.Sys / 1024 / 1024,
		"gc_cycles":         memStats.NumGC,
		"goroutines":        runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	if fps := pm.FPS(); fps > 0 && fps < pm.lowFPSThreshold {
		alerts = append(alerts, PerformanceAlert{
			Type:      "low_fps",
			Message:   "Frame rate is below threshold",
			Value:     fps,
			Threshold: pm.lowFPSThreshold,
			Timestamp: currentTime,
		})
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024
	if memoryMB > 500 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: 500,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.totalTime.Store(0)
	pm.columnTime.Store(0)
	pm.spriteTime.Store(0)
	pm.effectTime.Store(0)
	pm.aiTime.Store(0)
	pm.raysCast.Store(0)
	pm.raysNoWall.Store(0)
	pm.spritesVisible.Store(0)
	pm.spritePixels.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// ProfiledFunction wraps a function with performance timing
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	// Store timing based on function name
	switch name {
	case StageColumns:
		pm.columnTime.Store(uint64(duration.Nanoseconds()))
	case StageSprites:
		pm.spriteTime.Store(uint64(duration.Nanoseconds()))
	case StageEffects:
		pm.effectTime.Store(uint64(duration.Nanoseconds()))
	case StageAI:
		pm.aiTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}
