package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// Metrics contadores Prometheus de la API. Implementa admin.Recorder.
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	requests  *prometheus.CounterVec
}

// NewMetrics registra los contadores en un registry propio.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_mutations_total",
			Help: "Mutaciones del store por recurso, acción y resultado.",
		}, []string{"resource", "action", "outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Peticiones HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(m.mutations, m.requests)
	return m
}

// Mutation cuenta una mutación del store.
func (m *Metrics) Mutation(resource entity.Resource, action entity.Action, outcome string) {
	m.mutations.WithLabelValues(string(resource), string(action), outcome).Inc()
}

// Middleware cuenta cada petición con la ruta registrada (no la URL cruda).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.requests.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler expone el registry en formato de texto de Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
