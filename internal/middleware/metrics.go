package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// InitMetrics builds the Prometheus HTTP metrics collector for the service.
// Each call gets its own registry so constructing several servers in one
// process (tests do this) never trips duplicate collector registration.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.NewWithRegistry(prometheus.NewRegistry(), serviceName, "http", "", nil)
}

// MetricsMiddleware records request counts, latencies and in-flight gauges
// for every route the app serves.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
