package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/samm-evaluation/echo-server/internal/apptracker"
	"github.com/samm-evaluation/echo-server/internal/apptracker/dryrun"
	"github.com/samm-evaluation/echo-server/internal/metrics"
	"github.com/samm-evaluation/echo-server/internal/serve/httphandler"
	"github.com/samm-evaluation/echo-server/internal/utils"
	"github.com/samm-evaluation/echo-server/internal/validators"
)

var ErrNotListening = errors.New("server is not listening")

type ConnectionTimeouts struct {
	ReadHeaderSeconds          int `validate:"gte=0"`
	ReadSeconds                int `validate:"gte=0"`
	WriteSeconds               int `validate:"gte=0"`
	IdleSeconds                int `validate:"gte=0"`
	ShutdownGracePeriodSeconds int `validate:"gte=0"`
}

type Configs struct {
	// Host is the interface to bind. Empty binds every interface.
	Host         string
	Port         int `validate:"port"`
	AdminPort    int `validate:"port"`
	ResponseBody string
	ContentType  string `validate:"required,media_type"`
	LogLevel     logrus.Level
	Timeouts     ConnectionTimeouts

	AppTracker apptracker.AppTracker `validate:"-"`
	// Out receives the startup line and one report per request. Defaults to os.Stdout.
	Out io.Writer `validate:"-"`
}

// Server owns the responder listener and the optional admin listener.
type Server struct {
	cfg            Configs
	metricsService metrics.MetricsService
	shuttingDown   atomic.Bool

	httpServer    *http.Server
	listener      net.Listener
	adminServer   *http.Server
	adminListener net.Listener
}

// Serve binds the configured ports and serves until ctx is cancelled.
func Serve(ctx context.Context, cfg Configs) error {
	server, err := NewServer(cfg)
	if err != nil {
		return fmt.Errorf("setting up server: %w", err)
	}

	if err = server.Listen(); err != nil {
		return fmt.Errorf("binding server: %w", err)
	}

	return server.Run(ctx)
}

func NewServer(cfg Configs) (*Server, error) {
	if err := validators.ValidateStruct(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.AppTracker == nil {
		cfg.AppTracker = &dryrun.DryRunTracker{}
	}

	s := &Server{
		cfg:            cfg,
		metricsService: metrics.NewMetricsService(),
	}

	s.httpServer = s.newHTTPServer(NewHandler(HandlerDependencies{
		Response: httphandler.ResponseConfig{
			Body:        cfg.ResponseBody,
			ContentType: cfg.ContentType,
		},
		ReportWriter:   cfg.Out,
		MetricsService: s.metricsService,
		AppTracker:     cfg.AppTracker,
	}))

	if cfg.AdminPort > 0 {
		s.adminServer = s.newHTTPServer(NewAdminHandler(AdminHandlerDependencies{
			MetricsService: s.metricsService,
			AppTracker:     cfg.AppTracker,
			ShuttingDown:   &s.shuttingDown,
		}))
	}

	return s, nil
}

func (s *Server) newHTTPServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: utils.Seconds(s.cfg.Timeouts.ReadHeaderSeconds),
		ReadTimeout:       utils.Seconds(s.cfg.Timeouts.ReadSeconds),
		WriteTimeout:      utils.Seconds(s.cfg.Timeouts.WriteSeconds),
		IdleTimeout:       utils.Seconds(s.cfg.Timeouts.IdleSeconds),
		ErrorLog:          stdlog.New(errorLogWriter{}, "", 0),
	}
}

// Listen binds the responder port, and the admin port when enabled, then prints the startup line.
// A port that cannot be bound is reported right away; nothing is retried.
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	if s.adminServer != nil {
		adminAddr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.AdminPort))
		adminListener, adminErr := net.Listen("tcp", adminAddr)
		if adminErr != nil {
			_ = listener.Close()
			return fmt.Errorf("listening on admin address %s: %w", adminAddr, adminErr)
		}
		s.adminListener = adminListener
	}
	s.listener = listener

	if _, err = fmt.Fprintf(s.cfg.Out, "Server listening on port %d\n", s.Port()); err != nil {
		log.Warnf("writing startup line: %s", err.Error())
	}
	return nil
}

// Addr is the bound responder address, nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// AdminAddr is the bound admin address, nil when the admin listener is disabled or not bound yet.
func (s *Server) AdminAddr() net.Addr {
	if s.adminListener == nil {
		return nil
	}
	return s.adminListener.Addr()
}

// Port is the bound responder port. It differs from the configured one only when port 0 was requested.
func (s *Server) Port() int {
	if tcpAddr, ok := s.Addr().(*net.TCPAddr); ok {
		return tcpAddr.Port
	}
	return s.cfg.Port
}

// Run serves connections until ctx is done, then drains them for the configured grace period.
func (s *Server) Run(ctx context.Context) error {
	if s.listener == nil {
		return ErrNotListening
	}

	errCh := make(chan error, 2)
	log.Ctx(ctx).Infof("Starting echo server on %s", s.listener.Addr())
	go func() {
		errCh <- serveListener(s.httpServer, s.listener, "echo server")
	}()
	if s.adminServer != nil {
		log.Ctx(ctx).Infof("Starting admin server on %s", s.adminListener.Addr())
		go func() {
			errCh <- serveListener(s.adminServer, s.adminListener, "admin server")
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownErr := s.shutdown()
	return errors.Join(serveErr, shutdownErr)
}

func serveListener(server *http.Server, listener net.Listener, name string) error {
	err := server.Serve(listener)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serving %s: %w", name, err)
}

func (s *Server) shutdown() error {
	s.shuttingDown.Store(true)
	log.Info("Stopping echo server")

	ctx, cancel := context.WithTimeout(context.Background(), utils.Seconds(s.cfg.Timeouts.ShutdownGracePeriodSeconds))
	defer cancel()

	var errs []error
	servers := []*http.Server{s.httpServer}
	if s.adminServer != nil {
		servers = append(servers, s.adminServer)
	}
	for _, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down server: %w", err))
			_ = server.Close()
		}
	}

	s.cfg.AppTracker.Flush()

	return errors.Join(errs...)
}

// errorLogWriter routes net/http's internal error log (bad requests, accept errors) through the structured logger.
type errorLogWriter struct{}

func (errorLogWriter) Write(p []byte) (int, error) {
	log.WithField("component", "net/http").Warn(strings.TrimSpace(string(p)))
	return len(p), nil
}
