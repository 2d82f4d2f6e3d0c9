package http

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fleshka4/tradingpair/internal/config"
	"github.com/fleshka4/tradingpair/internal/service"
)

// Server represents the HTTP transport layer.
type Server struct {
	svc    service.Service
	mux    *http.ServeMux
	logger *zap.Logger

	graceTimeout      time.Duration
	readHeaderTimeout time.Duration
	requestTimeout    time.Duration
}

// NewServer creates a new HTTP server with registered routes. A nil gatherer
// leaves /metrics unregistered.
func NewServer(svc service.Service, cfg config.Config, logger *zap.Logger, gatherer prometheus.Gatherer) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		svc:    svc,
		mux:    http.NewServeMux(),
		logger: logger.With(zap.String("component", "http")),

		graceTimeout:      cfg.GraceTimeout,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		requestTimeout:    cfg.RequestTimeout,
	}

	s.mux.HandleFunc("POST /provide", s.handleProvide)
	s.mux.HandleFunc("POST /withdraw", s.handleWithdraw)
	s.mux.HandleFunc("POST /swap", s.handleSwap)
	s.mux.HandleFunc("POST /shares/transfer", s.handleTransferShares)
	s.mux.HandleFunc("POST /shares/approve", s.handleApproveShares)
	s.mux.HandleFunc("POST /shares/transfer-from", s.handleTransferSharesFrom)
	s.mux.HandleFunc("POST /assets/{asset}/approve", s.handleApproveAsset)

	s.mux.HandleFunc("GET /withdraw-amounts", s.handleWithdrawAmounts)
	s.mux.HandleFunc("GET /expected-shares", s.handleExpectedShares)
	s.mux.HandleFunc("GET /price", s.handlePrice)
	s.mux.HandleFunc("GET /price-impact", s.handlePriceImpact)
	s.mux.HandleFunc("GET /price-for-one", s.handlePriceForOne)
	s.mux.HandleFunc("GET /current-price", s.handleCurrentPrice)
	s.mux.HandleFunc("GET /reserves", s.handleReserves)
	s.mux.HandleFunc("GET /shares/total", s.handleTotalShares)
	s.mux.HandleFunc("GET /shares/allowance", s.handleShareAllowance)
	s.mux.HandleFunc("GET /shares/{account}", s.handleShareOf)
	s.mux.HandleFunc("GET /locked/{account}", s.handleLockedAmounts)
	s.mux.HandleFunc("GET /trade-count", s.handleTradeCount)
	s.mux.HandleFunc("GET /info", s.handleInfo)
	s.mux.HandleFunc("GET /assets/{asset}/balance/{account}", s.handleAssetBalance)
	s.mux.HandleFunc("GET /assets/{asset}/allowance", s.handleAssetAllowance)

	s.mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("pong")); err != nil {
			s.logger.Warn("ping write error", zap.Error(err))
		}
	})
	if gatherer != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return s
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.logMiddleware(s.mux)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "listen")
		}
		return nil
	case <-ctx.Done():
	}
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.graceTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "srv.Shutdown")
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logMiddleware logs each HTTP request and the time taken to process it.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.requestTimeout)
}
