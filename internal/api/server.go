// Package api provides the HTTP API surface of the snowgate server.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/snowgate/snowgate/internal/gateway"
	"github.com/snowgate/snowgate/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// ServerName identifies this server in the health check document.
const ServerName = "snowgate"

// DefaultHeartbeatInterval is the spacing between ping events on the heartbeat stream.
const DefaultHeartbeatInterval = 30 * time.Second

// ServerOptions holds the dependencies for constructing the API server.
type ServerOptions struct {
	// Host and Port are the address to bind the HTTP server to.
	Host string
	Port string

	// Gateway dispatches tool invocations. The server can be constructed
	// without one, but registry-dependent endpoints then fail with a
	// server fault until the process is restarted with a gateway.
	Gateway *gateway.Gateway

	// MCPServer, when set, is mounted at /mcp over the streamable HTTP transport.
	MCPServer *server.MCPServer

	OtelProviders *telemetry.Providers

	// HeartbeatInterval overrides the spacing of ping events on /sse.
	// Zero means DefaultHeartbeatInterval.
	HeartbeatInterval time.Duration

	Logger *zap.Logger
}

// Server is the snowgate HTTP server: health check, tool listing, tool
// invocation and the heartbeat event stream.
type Server struct {
	host string
	port string

	router  *gin.Engine
	gateway *gateway.Gateway

	mcpServer     *server.MCPServer
	otelProviders *telemetry.Providers

	heartbeatInterval time.Duration
	logger            *zap.Logger
}

// NewServer initializes a new Gin server for the snowgate API.
func NewServer(opts *ServerOptions) (*Server, error) {
	s := &Server{
		host:              opts.Host,
		port:              opts.Port,
		gateway:           opts.Gateway,
		mcpServer:         opts.MCPServer,
		otelProviders:     opts.OtelProviders,
		heartbeatInterval: opts.HeartbeatInterval,
		logger:            opts.Logger,
	}
	if s.heartbeatInterval <= 0 {
		s.heartbeatInterval = DefaultHeartbeatInterval
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	// Set up the router after the server is fully initialized
	s.router = s.setupRouter()

	return s, nil
}

// Start runs the Gin server (blocking call)
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.router.Run(addr); err != nil {
		return fmt.Errorf("failed to run the server: %w", err)
	}
	return nil
}

// setupRouter sets up the Gin router with the API endpoints.
func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// if otel is enabled, setup prometheus metrics endpoint
	if s.otelProviders != nil && s.otelProviders.IsEnabled() {
		// instrument gin
		r.Use(otelgin.Middleware(s.otelProviders.ServiceName()))

		// expose prometheus metrics endpoint
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/", s.serverInfoHandler())

	r.GET("/tools", s.requireInitialized(), s.listToolsHandler())
	r.POST("/tools/:name", s.requireInitialized(), s.invokeToolHandler())

	r.GET("/sse", s.streamEventsHandler())

	// Mount the MCP server over the streamable http transport
	if s.mcpServer != nil {
		streamableHTTPServer := server.NewStreamableHTTPServer(s.mcpServer)
		r.Any("/mcp", s.requireInitialized(), gin.WrapH(streamableHTTPServer))
	}

	return r
}

// requireInitialized guards endpoints that depend on the tool registry.
// A missing gateway indicates a deployment defect, so unlike per-request
// dispatch errors it is escalated as a transport-level fault.
func (s *Server) requireInitialized() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.gateway == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server not initialized"})
			return
		}
		c.Next()
	}
}
