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

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"github.com/tomz197/starfighter/internal/config"
	"github.com/tomz197/starfighter/internal/draw"
	"github.com/tomz197/starfighter/internal/loop/client"
	gameconfig "github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/loop/server"
)

var errNoWindow = errors.New("pty window size not reported")

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	cfg, err := gameconfig.Load(config.GetEnv("GAME_CONFIG", ""))
	if err != nil {
		logger.Fatal("failed to load game config", "err", err)
	}

	// Lobby shared by all SSH clients; every session plays its own match.
	lobby := server.NewServer(logger.With("component", "lobby"))

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(lobby, cfg, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
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
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	lobby.Shutdown(config.GetEnvDuration("SSH_SHUTDOWN_TIMEOUT", 15*time.Second))
	logger.Info("lobby stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs a game client for each SSH session.
func gameMiddleware(lobby *server.Server, cfg gameconfig.Config, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			logger.Info("new game session", "user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			win := newWindowTracker(pty.Window)
			go win.watch(winCh)

			c := client.NewClient(lobby, bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: win.Size,
				Username:     sess.User(),
				Config:       &cfg,
				Logger:       logger.With("user", sess.User()),
			})
			if err := c.Run(sess.Context()); err != nil {
				logger.Error("game error", "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// windowTracker holds the latest PTY window size reported by the client.
type windowTracker struct {
	mu  sync.RWMutex
	win ssh.Window
}

func newWindowTracker(initial ssh.Window) *windowTracker {
	return &windowTracker{win: initial}
}

// watch applies window-change events until the session closes the channel.
func (w *windowTracker) watch(winCh <-chan ssh.Window) {
	for win := range winCh {
		w.mu.Lock()
		w.win = win
		w.mu.Unlock()
	}
}

// Size implements draw.TermSizeFunc.
func (w *windowTracker) Size() (int, int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.win.Width <= 0 || w.win.Height <= 0 {
		return 0, 0, errNoWindow
	}
	return w.win.Width, w.win.Height, nil
}

var _ draw.TermSizeFunc = (*windowTracker)(nil).Size
