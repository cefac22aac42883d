package main

import (
	"context"
	"errors"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"

	"mazecaster/internal/config"
	"mazecaster/internal/monitoring"
	"mazecaster/internal/remote"
	"mazecaster/internal/world"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	// Generate host key if it doesn't exist
	fingerprint, err := remote.EnsureHostKey(cfg.Remote.HostKeyFile)
	if err != nil {
		log.Fatalf("Host key error: %v", err)
	}
	log.Printf("Host key %s", fingerprint)

	w := world.MustLoad(cfg)
	monitor := monitoring.NewPerformanceMonitor()
	server := remote.NewServer(w, monitor)
	if port := os.Getenv("PORT"); port != "" {
		server.SetAddr(":" + port)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
		stats := monitor.GetDetailedStats()
		log.Printf("Served %v sessions, %v goals reached", stats["sessions_served"], stats["goals_reached"])
	}()

	if _, port, err := net.SplitHostPort(server.Addr()); err == nil {
		log.Printf("Connect with: ssh -t -p %s localhost", port)
	}
	if err := server.Start(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Fatalf("SSH server error: %v", err)
	}
}
