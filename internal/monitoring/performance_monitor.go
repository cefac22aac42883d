package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks frame and render pass timings. It is safe to
// share between the desktop loop and SSH sessions.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Render pass metrics
	worldPassTime  atomic.Uint64
	spritePassTime atomic.Uint64
	columnsCast    atomic.Uint64
	spritePixels   atomic.Uint64
	activeSessions atomic.Int32
	sessionsServed atomic.Uint64
	goalsReached   atomic.Uint64

	// Statistics
	mutex          sync.RWMutex
	totalFrameTime float64
	avgFrameTime   float64
	avgWorldTime   float64
	startTime      time.Time
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime: time.Now(),
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
	frameTime := time.Since(ft.startTime)
	ft.monitor.frameTime.Store(uint64(frameTime.Nanoseconds()))
	count := ft.monitor.frameCount.Add(1)

	ft.monitor.mutex.Lock()
	ft.monitor.totalFrameTime += float64(frameTime.Nanoseconds())
	ft.monitor.avgFrameTime = ft.monitor.totalFrameTime / float64(count)
	ft.monitor.mutex.Unlock()
}

// PassTimer measures one render pass.
type PassTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartWorldPass begins timing the wall/floor/sky pass.
func (pm *PerformanceMonitor) StartWorldPass() *PassTimer {
	return &PassTimer{monitor: pm, startTime: time.Now()}
}

// EndWorldPass records the world pass duration and the columns it cast.
func (pt *PassTimer) EndWorldPass(columns int) {
	d := time.Since(pt.startTime)
	pt.monitor.worldPassTime.Store(uint64(d.Nanoseconds()))
	pt.monitor.columnsCast.Add(uint64(max(columns, 0)))

	pt.monitor.mutex.Lock()
	defer pt.monitor.mutex.Unlock()
	// Exponential moving average, one frame in ten
	if pt.monitor.avgWorldTime == 0 {
		pt.monitor.avgWorldTime = float64(d.Nanoseconds())
	} else {
		pt.monitor.avgWorldTime = 0.9*pt.monitor.avgWorldTime + 0.1*float64(d.Nanoseconds())
	}
}

// StartSpritePass begins timing the billboard pass.
func (pm *PerformanceMonitor) StartSpritePass() *PassTimer {
	return &PassTimer{monitor: pm, startTime: time.Now()}
}

// EndSpritePass records the sprite pass duration and pixels drawn.
func (pt *PassTimer) EndSpritePass(pixels int) {
	pt.monitor.spritePassTime.Store(uint64(time.Since(pt.startTime).Nanoseconds()))
	pt.monitor.spritePixels.Add(uint64(max(pixels, 0)))
}

// SessionStarted counts a newly attached remote viewer.
func (pm *PerformanceMonitor) SessionStarted() {
	pm.activeSessions.Add(1)
	pm.sessionsServed.Add(1)
}

// SessionEnded counts a detached remote viewer.
func (pm *PerformanceMonitor) SessionEnded() {
	pm.activeSessions.Add(-1)
}

// GoalReached counts a camera entering a goal cell.
func (pm *PerformanceMonitor) GoalReached() {
	pm.goalsReached.Add(1)
}

// Metrics is a snapshot of the current counters.
type Metrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	WorldPassTime   time.Duration
	SpritePassTime  time.Duration
	Frames          uint64
	ColumnsCast     uint64
	SpritePixels    uint64
	ActiveSessions  int32
	GoalsReached    uint64
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	frameTime := pm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = 1000000000.0 / float64(frameTime) // Convert nanoseconds to FPS
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return Metrics{
		FramesPerSecond: fps,
		FrameTime:       time.Duration(frameTime),
		WorldPassTime:   time.Duration(pm.worldPassTime.Load()),
		SpritePassTime:  time.Duration(pm.spritePassTime.Load()),
		Frames:          pm.frameCount.Load(),
		ColumnsCast:     pm.columnsCast.Load(),
		SpritePixels:    pm.spritePixels.Load(),
		ActiveSessions:  pm.activeSessions.Load(),
		GoalsReached:    pm.goalsReached.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]any {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	fps := 0.0
	if ft := pm.frameTime.Load(); ft > 0 {
		fps = 1000000000.0 / float64(ft)
	}

	return map[string]any{
		"uptime_seconds":    time.Since(pm.startTime).Seconds(),
		"frame_count":       pm.frameCount.Load(),
		"avg_frame_time_ms": pm.avgFrameTime / 1000000,
		"avg_world_pass_ms": pm.avgWorldTime / 1000000,
		"current_fps":       fps,
		"columns_cast":      pm.columnsCast.Load(),
		"sprite_pixels":     pm.spritePixels.Load(),
		"active_sessions":   pm.activeSessions.Load(),
		"sessions_served":   pm.sessionsServed.Load(),
		"goals_reached":     pm.goalsReached.Load(),
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

// CheckPerformanceAlerts reports a low frame rate or a world pass that
// takes most of a 60 Hz frame.
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		fps := 1000000000.0 / float64(frameTime)
		if fps < 30 {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: 30,
				Timestamp: now,
			})
		}
	}

	worldMs := float64(pm.worldPassTime.Load()) / 1000000
	if worldMs > 12 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_world_pass",
			Message:   "World pass is above 12ms",
			Value:     worldMs,
			Threshold: 12,
			Timestamp: now,
		})
	}

	return alerts
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.worldPassTime.Store(0)
	pm.spritePassTime.Store(0)
	pm.columnsCast.Store(0)
	pm.spritePixels.Store(0)
	pm.goalsReached.Store(0)

	pm.mutex.Lock()
	pm.totalFrameTime = 0
	pm.avgFrameTime = 0
	pm.avgWorldTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
