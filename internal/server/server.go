package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"capgate/internal/api"
	"capgate/internal/config"
	"capgate/internal/discovery"
	"capgate/internal/proxy"
	"capgate/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const serverName = "capgate"

// Server hosts the capability registry over MCP.
//
// In dynamic mode the discovery meta-tools are always listed and the enabled
// operations are added and removed as categories are toggled. In proxy mode
// the tool list is fixed: the discovery meta-tools plus execute_tool.
type Server struct {
	cfg       Config
	registry  Registry
	mcpServer *mcpserver.MCPServer
	provider  api.ToolProvider
	toolSync  *ToolSync

	// Transport-specific servers
	httpServer  *http.Server
	stdioServer *mcpserver.StdioServer
	listener    net.Listener

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
	started    bool
}

// New creates the MCP server and registers its fixed tools. In dynamic mode
// it installs a ToolSync as the registry notifier and performs an initial
// sync, so categories enabled before New are already exposed.
func New(cfg Config, reg Registry) (*Server, error) {
	if cfg.Mode == "" {
		cfg.Mode = config.ModeDynamic
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	s := &Server{cfg: cfg, registry: reg}
	s.mcpServer = mcpserver.NewMCPServer(
		serverName,
		cfg.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(serverInstructions(cfg.Mode)),
	)

	switch cfg.Mode {
	case config.ModeDynamic:
		guide := discovery.NewProvider(reg)
		s.provider = guide
		s.toolSync = newToolSync(s.mcpServer, reg, guide)
	case config.ModeProxy:
		s.provider = proxy.NewProvider(reg)
	default:
		return nil, fmt.Errorf("unknown server mode %q", cfg.Mode)
	}

	s.mcpServer.AddTools(providerTools(s.provider)...)

	if s.toolSync != nil {
		reg.SetNotifier(s.toolSync)
		s.toolSync.Sync()
	}

	logging.Info("Server", "Created MCP server in %s mode with %d meta-tools", cfg.Mode, len(s.provider.GetTools()))
	return s, nil
}

func serverInstructions(mode string) string {
	if mode == config.ModeProxy {
		return "This server fronts a large catalog of CRM operations grouped into categories. " +
			"Use list_categories and search_tools to find an operation, describe_tool to read its arguments, " +
			"and execute_tool to run it."
	}
	return "This server fronts a large catalog of CRM operations grouped into categories that start disabled. " +
		"Use list_categories and search_tools to find operations, then enable_category to make them callable. " +
		"Disable categories you no longer need to keep the tool list small."
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

// ToolSync returns the dynamic mode tool synchroniser, or nil in proxy mode.
func (s *Server) ToolSync() *ToolSync {
	return s.toolSync
}

// Addr returns the bound address of an HTTP transport, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start starts the configured transport. HTTP transports are listening when
// Start returns.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("server already started")
	}

	s.ctx, s.cancelFunc = context.WithCancel(ctx)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	switch s.cfg.Transport {
	case config.MCPTransportStdio:
		logging.Info("Server", "Starting MCP server with stdio transport")
		s.stdioServer = mcpserver.NewStdioServer(s.mcpServer)
		stdioServer := s.stdioServer
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := stdioServer.Listen(s.ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error("Server", err, "Stdio server error")
			}
		}()

	case config.MCPTransportSSE:
		logging.Info("Server", "Starting MCP server with SSE transport on %s", addr)
		if err := s.serveHTTP(addr, s.sseMux(addr)); err != nil {
			s.cancelFunc()
			return err
		}

	case config.MCPTransportStreamableHTTP, "":
		logging.Info("Server", "Starting MCP server with streamable-http transport on %s", addr)
		if err := s.serveHTTP(addr, s.streamableMux()); err != nil {
			s.cancelFunc()
			return err
		}

	default:
		s.cancelFunc()
		return fmt.Errorf("unknown transport %q", s.cfg.Transport)
	}

	s.started = true
	return nil
}

func (s *Server) serveHTTP(addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	httpServer := s.httpServer
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server", err, "HTTP server error")
		}
	}()
	return nil
}

// streamableMux serves MCP at /mcp plus /healthz. Proxy mode never changes
// its tool list, so it runs stateless.
func (s *Server) streamableMux() http.Handler {
	var opts []mcpserver.StreamableHTTPOption
	if s.cfg.Mode == config.ModeProxy {
		opts = append(opts, mcpserver.WithStateLess(true))
	}
	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer, opts...)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/mcp", streamable)
	return mux
}

func (s *Server) sseMux(addr string) http.Handler {
	sseServer := mcpserver.NewSSEServer(
		s.mcpServer,
		mcpserver.WithBaseURL("http://"+addr),
		mcpserver.WithSSEEndpoint("/sse"),
		mcpserver.WithMessageEndpoint("/message"),
		mcpserver.WithKeepAlive(true),
		mcpserver.WithKeepAliveInterval(30*time.Second),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	return mux
}

// Health reports registry counts.
func (s *Server) Health() Health {
	h := Health{
		Status:            "ok",
		Mode:              s.cfg.Mode,
		Categories:        len(s.registry.Categories()),
		TotalOperations:   s.registry.OperationCount(),
		EnabledOperations: s.registry.EnabledOperationCount(),
		ExposedTools:      len(s.provider.GetTools()),
	}
	if s.toolSync != nil {
		h.ExposedTools += len(s.toolSync.ActiveTools())
	}
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(s.Health())
}

// Stop shuts the transport down and waits for background routines.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return fmt.Errorf("server not started")
	}
	logging.Info("Server", "Stopping MCP server")

	cancelFunc := s.cancelFunc
	httpServer := s.httpServer
	s.mu.Unlock()

	cancelFunc()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var shutdownErr error
	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			shutdownErr = fmt.Errorf("shut down HTTP server: %w", err)
		}
	}

	// Stdio stops on context cancellation but may stay blocked on a read
	// from stdin; do not wait for it.
	if s.cfg.Transport != config.MCPTransportStdio {
		s.wg.Wait()
	}

	s.mu.Lock()
	s.started = false
	s.httpServer = nil
	s.stdioServer = nil
	s.listener = nil
	s.mu.Unlock()

	return shutdownErr
}

// CallTool runs a tool through the MCP request pipeline, the way a client
// call would, for in-process callers and tests.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	params := map[string]interface{}{"name": name, "arguments": args}
	result, err := s.handle(ctx, string(mcp.MethodToolsCall), params)
	if err != nil {
		return nil, err
	}
	switch r := result.(type) {
	case mcp.CallToolResult:
		return &r, nil
	case *mcp.CallToolResult:
		return r, nil
	}
	return nil, fmt.Errorf("unexpected tools/call result %T", result)
}

// ListTools returns the names of the tools currently listed to clients.
func (s *Server) ListTools(ctx context.Context) ([]string, error) {
	result, err := s.handle(ctx, string(mcp.MethodToolsList), map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	var tools []mcp.Tool
	switch r := result.(type) {
	case mcp.ListToolsResult:
		tools = r.Tools
	case *mcp.ListToolsResult:
		tools = r.Tools
	default:
		return nil, fmt.Errorf("unexpected tools/list result %T", result)
	}
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	return names, nil
}

func (s *Server) handle(ctx context.Context, method string, params interface{}) (interface{}, error) {
	raw, err := json.Marshal(map[string]interface{}{
		"jsonrpc": mcp.JSONRPC_VERSION,
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}

	switch resp := s.mcpServer.HandleMessage(ctx, raw).(type) {
	case mcp.JSONRPCResponse:
		return resp.Result, nil
	case *mcp.JSONRPCResponse:
		return resp.Result, nil
	case mcp.JSONRPCError:
		return nil, fmt.Errorf("%s failed: %s", method, resp.Error.Message)
	default:
		return nil, fmt.Errorf("unexpected %s response %T", method, resp)
	}
}
