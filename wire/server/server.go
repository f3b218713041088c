package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"

	"github.com/letsrust/simple-redis/lib/command"
	"github.com/letsrust/simple-redis/lib/db"
	"github.com/letsrust/simple-redis/lib/resp"
	"github.com/letsrust/simple-redis/wire/common"
	"github.com/letsrust/simple-redis/wire/transport"
)

var Logger = logger.GetLogger("server")

// respServer executes decoded requests against the shared backend
type respServer struct {
	config    common.ServerConfig
	transport transport.IServerTransport
	backend   db.Backend
}

// NewServer creates a new RESP server
// It takes a config, transport and backend as parameters
//
// Usage:
//
//	s := server.NewServer(
//		*config,
//		tcp.NewTCPServerTransport(),
//		birch.NewBirchDB(nil),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewServer(
	config common.ServerConfig,
	transport transport.IServerTransport,
	backend db.Backend,
) *respServer {
	Logger.Infof("Created RESP server")
	Logger.Infof(config.String())

	return &respServer{
		config:    config,
		transport: transport,
		backend:   backend,
	}
}

// Serve registers the request handler and blocks serving connections
func (s *respServer) Serve() error {
	s.registerTransportHandler()
	s.registerMetrics()

	if s.config.MetricsEndpoint != "" {
		go s.serveMetrics()
	}

	Logger.Infof("Backend ready: %s", s.backend.Info())
	return s.transport.Listen(s.config)
}

// Handle processes one decoded request frame and returns the encoded
// reply. It is the ServerHandleFunc registered with the transport,
// exported for in-process use and tests.
func (s *respServer) Handle(req resp.Frame) []byte {
	cmd, err := command.Parse(req)
	if err != nil {
		// recoverable per request, the session stays open
		metrics.GetOrCreateCounter(`sredis_command_errors_total`).Inc()
		Logger.Warningf("Rejected request: %v", err)
		return resp.SimpleError("ERR " + err.Error()).Encode()
	}

	metrics.GetOrCreateCounter(
		fmt.Sprintf(`sredis_commands_total{command=%q}`, cmd.Name())).Inc()

	start := time.Now()
	reply := cmd.Execute(s.backend)
	Logger.Debugf("Executed %s in %s", cmd.Name(), time.Since(start))

	return reply.Encode()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (s *respServer) registerTransportHandler() {
	s.transport.RegisterHandler(s.Handle)
}

// registerMetrics exports backend key counts as gauges
func (s *respServer) registerMetrics() {
	metrics.GetOrCreateGauge(`sredis_keys{namespace="flat"}`, func() float64 {
		return float64(s.backend.Info().FlatKeys)
	})
	metrics.GetOrCreateGauge(`sredis_keys{namespace="hash"}`, func() float64 {
		return float64(s.backend.Info().HashKeys)
	})
}

// serveMetrics exposes the metrics in Prometheus text format
func (s *respServer) serveMetrics() {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	Logger.Infof("Serving metrics on %s/metrics", s.config.MetricsEndpoint)
	if err := http.ListenAndServe(s.config.MetricsEndpoint, mux); err != nil {
		Logger.Errorf("Metrics listener failed: %v", err)
	}
}
