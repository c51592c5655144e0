package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/transitrepair/engine/internal/cache"
	"github.com/transitrepair/engine/internal/config"
	"github.com/transitrepair/engine/internal/overpass"
	"github.com/transitrepair/engine/internal/wsgateway"
)

var serveAddr string

var (
	repairRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transitrepair_repair_requests_total",
		Help: "Repair requests handled by the gateway, by outcome.",
	}, []string{"outcome"})

	repairDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transitrepair_repair_duration_seconds",
		Help:    "Time spent computing one repair, from decoded request to response.",
		Buckets: prometheus.DefBuckets,
	})
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the WebSocket repair gateway",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

// gatewayServer bundles the dependencies one WebSocket connection's handler
// closure needs — the engine's own clients plus the shared TTL caches, kept
// alive for the server's lifetime rather than rebuilt per request.
type gatewayServer struct {
	cfg      config.Config
	overpass *overpass.Client
	caches   *cache.Caches
	upgrader *wsgateway.Upgrader
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv := &gatewayServer{
		cfg:      cfg,
		overpass: overpass.NewClient(cfg.OverpassAPIInterpreter, "transitrepair"),
		caches:   cache.NewCaches(),
		upgrader: wsgateway.NewUpgrader(),
	}
	defer srv.caches.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/ws", srv.handleWS)
	mux.Handle("/metrics", promhttp.Handler())

	slog.Info("transitrepair gateway listening", "addr", serveAddr)
	return http.ListenAndServe(serveAddr, mux)
}

func (s *gatewayServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	if err := wsgateway.Handle(ctx, conn, s.handleRequest); err != nil {
		slog.Warn("websocket connection ended", "error", err)
	}
}

// handleRequest decodes one repair request frame, runs the pipeline, and
// returns the response value wsgateway will encode back to the client.
func (s *gatewayServer) handleRequest(ctx context.Context, payload []byte) (any, error) {
	start := time.Now()

	var req repairRequest
	if err := decodeRequest(payload, &req); err != nil {
		repairRequestsTotal.WithLabelValues("bad_input").Inc()
		return nil, err
	}

	resp, err := runPipeline(ctx, s.cfg, s.overpass, s.caches, req)
	repairDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		repairRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	repairRequestsTotal.WithLabelValues("ok").Inc()
	return resp, nil
}
