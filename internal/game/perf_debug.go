package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"mazerunner/internal/logger"
)

const (
	perfLowFpsDuration = 3 * time.Second
	perfLogInterval    = 3 * time.Second
)

func (gl *GameLoop) maybeLogPerfDrop() {
	if !gl.game.config.Debug.PerfLog {
		return
	}

	fps := ebiten.ActualFPS()
	now := time.Now()
	if !gl.perfDropDue(fps, now) {
		return
	}
	gl.perfLastPerfLog = now
	gl.logPerfSnapshot(fps)
}

// perfDropDue tracks how long fps has stayed under the threshold and reports
// whether a snapshot should be logged now
func (gl *GameLoop) perfDropDue(fps float64, now time.Time) bool {
	if fps >= gl.game.config.Debug.LowFPSThreshold {
		gl.perfLowFpsSince = time.Time{}
		gl.perfLastPerfLog = time.Time{}
		return false
	}

	if gl.perfLowFpsSince.IsZero() {
		gl.perfLowFpsSince = now
		return false
	}
	if now.Sub(gl.perfLowFpsSince) < perfLowFpsDuration {
		return false
	}
	if !gl.perfLastPerfLog.IsZero() && now.Sub(gl.perfLastPerfLog) < perfLogInterval {
		return false
	}
	return true
}

func (gl *GameLoop) logPerfSnapshot(fps float64) {
	stats := gl.game.monitor.GetDetailedStats()

	fields := logrus.Fields{
		"fps":        fps,
		"tps":        ebiten.ActualTPS(),
		"update_ms":  float64(gl.lastUpdateDuration.Microseconds()) / 1000.0,
		"draw_ms":    float64(gl.lastDrawDuration.Microseconds()) / 1000.0,
		"budget_ms":  frameBudgetMs(fps),
		"idle_ms":    idleBudgetMs(fps, gl.lastUpdateDuration, gl.lastDrawDuration),
		"columns_ms": getPerfFloat(stats, "column_time_ms"),
		"sprites_ms": getPerfFloat(stats, "sprite_time_ms"),
		"effects_ms": getPerfFloat(stats, "effect_time_ms"),
		"ai_ms":      getPerfFloat(stats, "ai_time_ms"),
		"rays":       getPerfUint(stats, "rays"),
		"sprites":    getPerfInt(stats, "sprites_visible"),
		"goroutines": getPerfInt(stats, "goroutines"),
		"mem_alloc":  getPerfUint(stats, "memory_alloc_mb"),
		"gc_cycles":  getPerfUint(stats, "gc_cycles"),
		"show_map":   gl.game.renderer.ShowMap,
	}
	if grid := gl.game.grid; grid != nil {
		fields["world"] = []int{grid.Width, grid.Height}
	}
	for _, alert := range gl.game.monitor.CheckPerformanceAlerts() {
		fields["alert_"+alert.Type] = alert.Value
	}

	logger.Log.WithFields(fields).Warnf("FPS below %.0f for %s", gl.game.config.Debug.LowFPSThreshold, perfLowFpsDuration)
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}

func idleBudgetMs(fps float64, updateDur, drawDur time.Duration) float64 {
	budget := frameBudgetMs(fps)
	busy := float64(updateDur.Microseconds()+drawDur.Microseconds()) / 1000.0
	idle := budget - busy
	if idle < 0 {
		return 0
	}
	return idle
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int32:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int32:
			return int(v)
		case uint32:
			return int(v)
		case uint64:
			return int(v)
		}
	}
	return 0
}

func getPerfUint(stats map[string]interface{}, key string) uint64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case uint64:
			return v
		case uint32:
			return uint64(v)
		case int:
			return uint64(v)
		}
	}
	return 0
}
