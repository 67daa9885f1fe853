package mock

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

const (
	// APIVersion is reported in every response envelope.
	APIVersion = "1.0.0"
	// DefaultBasePath matches the real backend's API prefix.
	DefaultBasePath = "/api"
)

// Envelope wraps every mock response.
type Envelope struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Server serves a Dataset over HTTP using the route table.
type Server struct {
	data     *Dataset
	engine   *gin.Engine
	routes   []Route
	basePath string
	latency  time.Duration
	logger   hclog.Logger
	now      func() time.Time
}

type ServerOption func(*Server)

// WithLatency delays every response, imitating a remote backend.
func WithLatency(d time.Duration) ServerOption {
	return func(s *Server) {
		s.latency = d
	}
}

// WithBasePath mounts the routes under prefix instead of DefaultBasePath.
func WithBasePath(prefix string) ServerOption {
	return func(s *Server) {
		s.basePath = "/" + strings.Trim(prefix, "/")
	}
}

func WithLogger(logger hclog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRoutes replaces the default route table.
func WithRoutes(routes []Route) ServerOption {
	return func(s *Server) {
		s.routes = routes
	}
}

func NewServer(data *Dataset, opts ...ServerOption) *Server {
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		data:     data,
		routes:   DefaultRoutes(),
		basePath: DefaultBasePath,
		logger:   hclog.NewNullLogger(),
		now:      data.now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("mock")

	engine := gin.New()
	engine.Use(gin.Recovery(), s.logRequests())
	if s.latency > 0 {
		engine.Use(s.delay())
	}

	group := engine.Group(s.basePath)
	for _, r := range s.routes {
		group.Handle(r.Method, r.Pattern, s.wrap(r.Handle))
	}
	engine.NoRoute(func(c *gin.Context) {
		s.respond(c, http.StatusNotFound, nil, "Endpoint not found")
	})

	s.engine = engine
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Dataset returns the state the server mutates.
func (s *Server) Dataset() *Dataset {
	return s.data
}

func (s *Server) Routes() []Route {
	out := make([]Route, len(s.routes))
	copy(out, s.routes)
	return out
}

func (s *Server) wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, message, err := h(s.data, c)
		if err != nil {
			status, msg := classify(err)
			if status == http.StatusInternalServerError {
				s.logger.Error("mock handler failed", "path", c.Request.URL.Path, "error", err)
			}
			s.respond(c, status, nil, msg)
			return
		}
		if message == "" {
			message = "Operation successful"
		}
		s.respond(c, http.StatusOK, data, message)
	}
}

func (s *Server) respond(c *gin.Context, status int, data any, message string) {
	result := "success"
	if status >= http.StatusBadRequest {
		result = "error"
		if message == "" {
			message = "Operation failed"
		}
	}
	c.JSON(status, Envelope{
		Status:    result,
		Message:   message,
		Data:      data,
		Timestamp: s.now().UTC(),
		Version:   APIVersion,
	})
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request served",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) delay() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-t.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}

func classify(err error) (int, string) {
	var nf *NotFoundError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Error()
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), "mock: ")
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func pathID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be numeric", ErrInvalid, name)
	}
	return id, nil
}

func decodePatch(c *gin.Context) (Patch, error) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	patch := make(Patch)
	if len(strings.TrimSpace(string(raw))) == 0 {
		return patch, nil
	}
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return patch, nil
}
