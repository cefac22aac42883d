package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"mazecaster/internal/monitoring"
	"mazecaster/internal/raster"
	"mazecaster/internal/world"
)

// Server presents the world to SSH terminals. Each session gets its own
// view; the world is shared read-only.
type Server struct {
	world   *world.World
	monitor *monitoring.PerformanceMonitor
	addr    string
	hostKey string
	frame   time.Duration

	mu  sync.Mutex
	srv *ssh.Server
}

// NewServer creates a server configured by the world's remote section.
func NewServer(w *world.World, monitor *monitoring.PerformanceMonitor) *Server {
	if monitor == nil {
		monitor = monitoring.NewPerformanceMonitor()
	}
	rc := w.Config.Remote
	frame := time.Duration(rc.FrameMillis) * time.Millisecond
	if frame <= 0 {
		frame = 66 * time.Millisecond
	}
	return &Server{
		world:   w,
		monitor: monitor,
		addr:    rc.Addr,
		hostKey: rc.HostKeyFile,
		frame:   frame,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// SetAddr overrides the listen address before Start.
func (s *Server) SetAddr(addr string) {
	s.addr = addr
}

// Start begins listening for SSH connections. It blocks until the server is
// shut down.
func (s *Server) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	s.mu.Lock()
	s.srv = server
	s.mu.Unlock()

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for open sessions to end
// or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.srv
	s.mu.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *Server) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		sess.Exit(1)
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	s.monitor.SessionStarted()
	log.Printf("Viewer connected: %s (%s)", username, sess.RemoteAddr())
	defer func() {
		s.monitor.SessionEnded()
		log.Printf("Viewer disconnected: %s", username)
	}()

	// Terminal dimensions
	termW, termH := ptyReq.Window.Width, ptyReq.Window.Height
	var termMu sync.Mutex

	view := world.NewView(s.world, max(termW, 1), viewRows(termH)*2, s.monitor)

	// Setup terminal
	io.WriteString(sess, raster.EnableAltScreen())
	io.WriteString(sess, raster.HideCursor())
	io.WriteString(sess, raster.ClearScreen())
	defer func() {
		io.WriteString(sess, raster.Reset)
		io.WriteString(sess, raster.ShowCursor())
		io.WriteString(sess, raster.DisableAltScreen())
	}()

	inputCh := make(chan world.Actions, 16)
	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		defer close(quitCh)
		buf := make([]byte, 64)
		var dec inputDecoder
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			actions, quit := dec.Feed(buf[:n])
			if quit {
				return
			}
			select {
			case inputCh <- actions:
			default:
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW, termH = win.Width, win.Height
			termMu.Unlock()
		}
	}()

	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()
	last := time.Now()
	var pending world.Actions
	var frame bytes.Buffer

	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case a := <-inputCh:
			pending = merge(pending, a)
		case now := <-ticker.C:
			termMu.Lock()
			w, h := termW, termH
			termMu.Unlock()

			view.Step(pending, now.Sub(last).Seconds())
			pending = world.Actions{}
			last = now

			frame.Reset()
			if err := s.renderFrame(&frame, view, w, h); err != nil {
				return
			}
			if _, err := sess.Write(frame.Bytes()); err != nil {
				return
			}
		}
	}
}

// renderFrame writes the view for a cols x rows terminal: the picture on all
// rows but the last, and a status line below it.
func (s *Server) renderFrame(out io.Writer, view *world.View, cols, rows int) error {
	frameTimer := s.monitor.StartFrame()
	defer frameTimer.EndFrame()

	cols = max(cols, 1)
	picRows := viewRows(rows)
	view.Resize(cols, picRows*2)
	if err := view.Render().WriteANSI(out, cols, picRows); err != nil {
		return err
	}
	if rows < 2 {
		return nil
	}
	_, err := io.WriteString(out, raster.MoveTo(rows, 1)+raster.Reset+truncate(view.Status(), cols)+raster.ClearToEOL())
	return err
}

// viewRows is the number of terminal rows left for the picture.
func viewRows(rows int) int {
	return max(rows-1, 1)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
