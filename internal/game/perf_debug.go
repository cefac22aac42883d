package game

import (
	"fmt"
	"log"
	"strings"
	"time"

	"mazecaster/internal/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsThreshold = 30.0
	perfLowFpsDuration  = 3 * time.Second
	perfLogInterval     = 3 * time.Second
)

// maybeLogPerfDrop logs a snapshot once the frame rate has stayed low for a
// while. Toggled with F3.
func (g *Game) maybeLogPerfDrop() {
	if !g.perfDebug.On {
		return
	}

	fps := ebiten.ActualFPS()
	if fps >= perfLowFpsThreshold {
		g.perfLowFpsSince = time.Time{}
		g.perfLastPerfLog = time.Time{}
		return
	}

	now := time.Now()
	if g.perfLowFpsSince.IsZero() {
		g.perfLowFpsSince = now
		return
	}
	if now.Sub(g.perfLowFpsSince) < perfLowFpsDuration {
		return
	}
	if !g.perfLastPerfLog.IsZero() && now.Sub(g.perfLastPerfLog) < perfLogInterval {
		return
	}

	g.perfLastPerfLog = now
	log.Print(perfSnapshot(fps, ebiten.ActualTPS(), g.lastUpdateDuration, g.lastDrawDuration, g.monitor))
}

func perfSnapshot(fps, tps float64, update, draw time.Duration, pm *monitoring.PerformanceMonitor) string {
	stats := pm.GetDetailedStats()

	causes := make([]string, 0, 2)
	for _, alert := range pm.CheckPerformanceAlerts() {
		causes = append(causes, fmt.Sprintf("%s (%.1f > %.0f)", alert.Type, alert.Value, alert.Threshold))
	}
	causeText := "none obvious"
	if len(causes) > 0 {
		causeText = strings.Join(causes, ", ")
	}

	return fmt.Sprintf(
		"[PERF] FPS<%.0f for >=%s | fps=%.1f tps=%.1f update=%.2fms draw=%.2fms budget=%.2fms world_avg=%.2fms columns=%v sprite_pixels=%v goroutines=%v causes=%s",
		perfLowFpsThreshold,
		perfLowFpsDuration,
		fps,
		tps,
		float64(update.Microseconds())/1000.0,
		float64(draw.Microseconds())/1000.0,
		frameBudgetMs(fps),
		stats["avg_world_pass_ms"],
		stats["columns_cast"],
		stats["sprite_pixels"],
		stats["goroutines"],
		causeText,
	)
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}
