// Package server exposes the cut optimizer over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cortesys/cutplan/internal/catalog"
	"github.com/cortesys/cutplan/internal/config"
	"github.com/cortesys/cutplan/internal/engine"
	"github.com/cortesys/cutplan/internal/model"
)

// Server wires the catalog store and configuration into HTTP handlers.
type Server struct {
	store *catalog.Store
	cfg   config.Config
}

// New returns a server backed by the given store and config.
func New(store *catalog.Store, cfg config.Config) *Server {
	return &Server{store: store, cfg: cfg}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	api.GET("/sheet-types", s.handleSheetTypes)
	api.GET("/banding-types", s.handleBandingTypes)
	api.POST("/optimize", s.handleOptimize)

	return r
}

// shutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal.
const shutdownTimeout = 5 * time.Second

// Run starts the HTTP server on the configured address and blocks until the
// listener fails or ctx is canceled. On cancellation the server drains
// in-flight requests before returning.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSheetTypes(c *gin.Context) {
	types, err := s.store.ActiveSheetTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, types)
}

func (s *Server) handleBandingTypes(c *gin.Context) {
	types, err := s.store.ActiveBandingTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, types)
}

// OptimizeRequest is the body of POST /api/optimize. Kerf and Order fall
// back to the configured defaults when omitted.
type OptimizeRequest struct {
	Parts []model.Part `json:"parts" binding:"required"`
	Kerf  *float64     `json:"kerf,omitempty"`
	Order string       `json:"order,omitempty"`
}

func (s *Server) handleOptimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Parts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no parts given"})
		return
	}

	view, err := s.store.CatalogView()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	kerf := s.cfg.Sheet.Kerf
	if req.Kerf != nil {
		kerf = *req.Kerf
	}
	order := s.cfg.Order
	if req.Order != "" {
		order = req.Order
	}

	agg := engine.NewAggregator(view, kerf)
	agg.Order = engine.ParseOrdering(order)

	result, err := agg.Run(req.Parts)
	if err != nil {
		status := http.StatusInternalServerError
		if isClientError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// isClientError classifies validation and reference failures as the
// caller's fault.
func isClientError(err error) bool {
	return errors.Is(err, model.ErrInvalidDimension) ||
		errors.Is(err, model.ErrInvalidQuantity) ||
		errors.Is(err, model.ErrInvalidKerf) ||
		errors.Is(err, model.ErrMissingSheetType) ||
		errors.Is(err, model.ErrMissingBandingTyp)
}
