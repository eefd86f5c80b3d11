package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"

	"github.com/tomz197/duel/internal/audio"
	"github.com/tomz197/duel/internal/config"
	"github.com/tomz197/duel/internal/draw"
	applog "github.com/tomz197/duel/internal/logging"
	"github.com/tomz197/duel/internal/loop"
)

// shutdownGrace is how long sessions get to show the shutdown notice and
// close before the listener is torn down.
const shutdownGrace = 5 * time.Second

func main() {
	cfg, roster, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	// The SSH host logs to stderr; sessions own their own screens.
	cfg.Logging.File = config.GetEnv("DUEL_LOG_FILE", "")
	logger, err := applog.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	host := config.GetEnv("SSH_HOST", cfg.SSH.Host)
	port := config.GetEnv("SSH_PORT", cfg.SSH.Port)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", cfg.SSH.HostKey)
	logger.Info("ssh config",
		zap.String("host", host),
		zap.String("port", port),
		zap.String("host_key", hostKeyPath),
		zap.Duration("idle_timeout", cfg.SSH.IdleTimeout))

	// Cancelled on shutdown; every session's loop watches it.
	sessionCtx, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()

	games := &gameHandler{
		ctx:    sessionCtx,
		cfg:    cfg,
		roster: roster,
		log:    logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", zap.String("addr", net.JoinHostPort(host, port)))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-done
	logger.Info("shutting down server", zap.Int("sessions", games.active()))

	// Tell every session to show the shutdown notice and return.
	cancelSessions()
	games.wait(shutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", zap.Error(err))
	}
}

// gameHandler runs an independent duel for every SSH session.
type gameHandler struct {
	ctx    context.Context
	cfg    *config.Config
	roster *config.Roster
	log    *zap.Logger

	mu       sync.Mutex
	sessions int
	wg       sync.WaitGroup
}

// middleware handles SSH sessions and runs the game loop.
func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		g.track(1)
		defer g.track(-1)

		log := g.log.With(zap.String("user", sess.User()), zap.String("remote", sess.RemoteAddr().String()))
		log.Info("new game session",
			zap.String("terminal", pty.Term),
			zap.Int("width", pty.Window.Width),
			zap.Int("height", pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// A session also ends when the client hangs up.
		ctx, cancel := context.WithCancel(g.ctx)
		defer cancel()
		go func() {
			select {
			case <-sess.Context().Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		reader := bufio.NewReader(sess)
		err := loop.Run(ctx, reader, sess, loop.RunOptions{
			Config:       g.cfg,
			Roster:       g.roster,
			Audio:        audio.Nop{}, // no sound over the wire
			Logger:       log,
			TermSizeFunc: sizeTracker.getSize,
			IdleTimeout:  g.cfg.SSH.IdleTimeout,
		})
		switch {
		case errors.Is(err, loop.ErrIdle):
			fmt.Fprintln(sess, "Disconnected for inactivity.")
			log.Info("session idle")
		case err != nil:
			log.Error("game error", zap.Error(err))
		}

		log.Info("session ended")
		next(sess)
	}
}

func (g *gameHandler) track(delta int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions += delta
	g.wg.Add(delta)
}

func (g *gameHandler) active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessions
}

// wait blocks until every session has returned or timeout passes.
func (g *gameHandler) wait(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		g.log.Warn("sessions still open after shutdown grace", zap.Int("sessions", g.active()))
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
