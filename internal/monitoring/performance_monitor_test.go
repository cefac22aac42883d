package monitoring

import (
	"sync"
	"testing"
	"time"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()

	if pm == nil {
		t.Fatal("NewPerformanceMonitor returned nil")
	}

	// Check that start time is recent
	if time.Since(pm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}
}

func TestPerformanceMonitorFrameTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	frameTimer := pm.StartFrame()
	time.Sleep(10 * time.Millisecond) // Simulate some work
	frameTimer.EndFrame()

	if pm.frameCount.Load() != 1 {
		t.Errorf("Expected frame count to be 1, got %d", pm.frameCount.Load())
	}

	// Frame time should be at least 10ms (in nanoseconds)
	minExpectedTime := uint64(10 * time.Millisecond)
	if frameTime := pm.frameTime.Load(); frameTime < minExpectedTime {
		t.Errorf("Expected frame time to be at least %d ns, got %d ns", minExpectedTime, frameTime)
	}

	metrics := pm.GetCurrentMetrics()
	if metrics.FramesPerSecond <= 0 || metrics.FramesPerSecond > 100 {
		t.Errorf("Expected FPS derived from a >=10ms frame, got %v", metrics.FramesPerSecond)
	}
}

func TestPerformanceMonitorPasses(t *testing.T) {
	pm := NewPerformanceMonitor()

	world := pm.StartWorldPass()
	world.EndWorldPass(640)
	world = pm.StartWorldPass()
	world.EndWorldPass(640)

	sprites := pm.StartSpritePass()
	sprites.EndSpritePass(120)
	sprites = pm.StartSpritePass()
	sprites.EndSpritePass(-5)

	metrics := pm.GetCurrentMetrics()
	if metrics.ColumnsCast != 1280 {
		t.Errorf("Expected 1280 columns cast, got %d", metrics.ColumnsCast)
	}
	if metrics.SpritePixels != 120 {
		t.Errorf("Expected 120 sprite pixels, got %d", metrics.SpritePixels)
	}

	stats := pm.GetDetailedStats()
	if stats["columns_cast"] != uint64(1280) {
		t.Errorf("Expected columns_cast in detailed stats, got %v", stats["columns_cast"])
	}
}

func TestPerformanceMonitorSessions(t *testing.T) {
	pm := NewPerformanceMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pm.SessionStarted()
			pm.StartFrame().EndFrame()
			pm.SessionEnded()
		}()
	}
	wg.Wait()

	metrics := pm.GetCurrentMetrics()
	if metrics.ActiveSessions != 0 {
		t.Errorf("Expected no active sessions, got %d", metrics.ActiveSessions)
	}
	if metrics.Frames != 50 {
		t.Errorf("Expected 50 frames, got %d", metrics.Frames)
	}
	if pm.GetDetailedStats()["sessions_served"] != uint64(50) {
		t.Error("Expected 50 sessions served")
	}
}

func TestPerformanceMonitorAlertsAndReset(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.frameTime.Store(uint64(100 * time.Millisecond))
	pm.worldPassTime.Store(uint64(20 * time.Millisecond))

	alerts := pm.CheckPerformanceAlerts()
	if len(alerts) != 2 {
		t.Fatalf("Expected low_fps and slow_world_pass alerts, got %+v", alerts)
	}
	if alerts[0].Type != "low_fps" || alerts[1].Type != "slow_world_pass" {
		t.Errorf("Unexpected alert types %q, %q", alerts[0].Type, alerts[1].Type)
	}

	pm.GoalReached()
	pm.Reset()
	if len(pm.CheckPerformanceAlerts()) != 0 {
		t.Error("Reset should clear alerts")
	}
	if pm.GetCurrentMetrics().GoalsReached != 0 {
		t.Error("Reset should clear goal count")
	}
}

func BenchmarkPerformanceMonitorFrameTiming(b *testing.B) {
	pm := NewPerformanceMonitor()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pm.StartFrame().EndFrame()
	}
}
