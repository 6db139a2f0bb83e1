package app

import (
	"context"
	"net/http"
	"time"

	httputil "flipfit/pkg/http"
	"flipfit/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 2 * time.Second

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache,omitempty"`
}

type HealthHandler struct {
	mongoClient *mongo.Client
	redisClient redis.UniversalClient
	log         *logger.Logger
}

// NewHealthHandler pings Mongo and, when configured, Redis on readiness checks.
func NewHealthHandler(mongoClient *mongo.Client, redisClient redis.UniversalClient, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		redisClient: redisClient,
		log:         log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ready", Database: "ok"}
	status := http.StatusOK

	if h.mongoClient == nil || h.mongoClient.Ping(ctx, nil) != nil {
		h.log.Error("Database health check failed", "path", r.URL.Path)
		resp.Status, resp.Database = "unavailable", "error"
		status = http.StatusServiceUnavailable
	}
	if h.redisClient != nil {
		resp.Cache = "ok"
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			h.log.Error("Redis health check failed", "error", err, "path", r.URL.Path)
			resp.Status, resp.Cache = "unavailable", "error"
			status = http.StatusServiceUnavailable
		}
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
}
