package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"

	"github.com/seipan/bstviz/bst"
	"github.com/seipan/bstviz/render"
)

//go:embed static/*
var StaticFS embed.FS

// ErrBusy is returned when an operation is triggered while another one is still animating.
var ErrBusy = errors.New("another operation is in progress")

type Config struct {
	Bind   string
	Delay  time.Duration
	Debug  bool
	Render render.Config
	Logger *slog.Logger
}

// Server owns one tree and animates operations on it, streaming every frame to
// all connected websocket listeners.
type Server struct {
	echo   *echo.Echo
	httpd  *http.Server
	logger *slog.Logger
	render render.Config
	reg    *prometheus.Registry

	anim *bst.Animator
	// busy guards the animator; the tree is only touched by the operation holding it.
	busy atomic.Bool

	mu        sync.Mutex
	listeners map[*listener]struct{}
	last      render.Scene
}

func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Render.Width == 0 {
		cfg.Render = render.DefaultConfig()
	}

	e := echo.New()
	srv := &Server{
		echo:      e,
		logger:    logger.With("system", "bstviz"),
		render:    cfg.Render,
		reg:       prometheus.NewRegistry(),
		listeners: make(map[*listener]struct{}),
		last:      render.NewScene(cfg.Render, nil, nil, false),
	}
	srv.anim = bst.NewAnimator(bst.New(), srv.onFrame, bst.WithDelay(cfg.Delay))
	srv.httpd = &http.Server{
		Handler:           srv,
		Addr:              cfg.Bind,
		ReadHeaderTimeout: 1 * time.Minute,
		MaxHeaderBytes:    1 * (1024 * 1024),
	}

	e.HideBanner = true
	e.Use(slogecho.New(srv.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "bstviz",
		Registerer: srv.reg,
	}))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
	}))
	e.HTTPErrorHandler = srv.errorHandler

	staticHandler := http.FileServer(func() http.FileSystem {
		if cfg.Debug {
			return http.FS(os.DirFS("server/static"))
		}
		fsys, err := fs.Sub(StaticFS, "static")
		if err != nil {
			panic(err)
		}
		return http.FS(fsys)
	}())

	e.GET("/", echo.WrapHandler(staticHandler))
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", staticHandler)))
	e.GET("/_health", srv.HandleHealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
		prometheus.Gatherers{prometheus.DefaultGatherer, srv.reg}, promhttp.HandlerOpts{})))

	e.GET("/ws", srv.HandleListen)
	e.GET("/api/tree", srv.HandleTree)
	e.GET("/api/config", srv.HandleConfig)
	e.POST("/api/:op", srv.HandleOp)

	return srv
}

// Start blocks serving HTTP until Shutdown is called.
func (srv *Server) Start() error {
	srv.logger.Info("starting server", "bind", srv.httpd.Addr, "delay", srv.anim.Delay())
	if err := srv.httpd.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "http server")
	}
	return nil
}

func (srv *Server) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	srv.echo.ServeHTTP(rw, req)
}

func (srv *Server) Shutdown(ctx context.Context) error {
	srv.logger.Info("shutting down")

	srv.mu.Lock()
	for l := range srv.listeners {
		l.close()
	}
	srv.mu.Unlock()

	return srv.httpd.Shutdown(ctx)
}

// Run animates a single operation. Frames are broadcast synchronously from the
// calling goroutine; a second call while one is running fails with ErrBusy.
func (srv *Server) Run(op bst.Op, key bst.Item) (res bst.Result, found bool, err error) {
	if !srv.busy.CompareAndSwap(false, true) {
		operationsCounter.WithLabelValues(op.String(), "busy").Inc()
		return res, false, ErrBusy
	}
	defer srv.busy.Store(false)

	start := time.Now()
	res, found = srv.anim.Apply(op, key)
	operationDuration.WithLabelValues(op.String()).Observe(time.Since(start).Seconds())
	operationsCounter.WithLabelValues(op.String(), outcome(op, res, found)).Inc()
	srv.logger.Info("operation complete", "op", op, "key", key, "changed", res.Changed, "found", found, "frames", res.Frames)
	return res, found, nil
}

func outcome(op bst.Op, res bst.Result, found bool) string {
	switch {
	case op == bst.OpSearch && found:
		return "found"
	case op == bst.OpSearch:
		return "not_found"
	case res.Changed:
		return "changed"
	default:
		return "noop"
	}
}

func (srv *Server) onFrame(f bst.Frame) {
	scene := render.FromFrame(srv.render, f)
	framesCounter.WithLabelValues(f.Op.String()).Inc()

	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.last = scene
	for l := range srv.listeners {
		l.setScene(scene)
	}
}

func (srv *Server) addListener(l *listener) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.listeners[l] = struct{}{}
	listenersGauge.Inc()
	l.setScene(srv.last)
}

func (srv *Server) removeListener(l *listener) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if _, ok := srv.listeners[l]; ok {
		delete(srv.listeners, l)
		listenersGauge.Dec()
	}
}

func (srv *Server) lastScene() render.Scene {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.last
}

type GenericStatus struct {
	Daemon  string `json:"daemon"`
	Status  string `json:"status"`
	Message string `json:"msg,omitempty"`
}

func (srv *Server) errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	var errorMessage string
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		errorMessage = fmt.Sprintf("%s", he.Message)
	}
	if code >= 500 {
		srv.logger.Warn("bstviz-http-internal-error", "err", err)
	}
	if !c.Response().Committed {
		c.JSON(code, GenericStatus{Daemon: "bstviz", Status: "error", Message: errorMessage})
	}
}

func (srv *Server) HandleHealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, GenericStatus{Status: "ok", Daemon: "bstviz"})
}
