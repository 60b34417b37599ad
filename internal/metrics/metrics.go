// Package metrics содержит Prometheus-метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "incident_map"

// Circuit breaker states
const (
	CircuitBreakerClosed   = 0
	CircuitBreakerOpen     = 1
	CircuitBreakerHalfOpen = 2
)

var (
	// IncidentsCreated - созданные инциденты по требуемому типу медиа
	IncidentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "incidents",
			Name:      "created_total",
			Help:      "Total incidents created",
		},
		[]string{"media_kind"},
	)

	// UpdatesPosted - опубликованные обновления по типу (update, disprove)
	UpdatesPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "incidents",
			Name:      "updates_posted_total",
			Help:      "Total incident updates posted",
		},
		[]string{"kind"},
	)

	// MediaPolicyRejections - отказы политики медиа по причине
	MediaPolicyRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "policy_rejections_total",
			Help:      "Total media attachments rejected by the evidence policy",
		},
		[]string{"reason"},
	)

	// AggregateSeverity - распределение итоговой тяжести отданных инцидентов
	AggregateSeverity = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "incidents",
			Name:      "aggregate_severity",
			Help:      "Aggregate severity of served incidents",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		},
	)

	// SOSTriggered - нажатия SOS
	SOSTriggered = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sos",
			Name:      "triggered_total",
			Help:      "Total SOS alerts triggered",
		},
	)

	// WebhookDeliveries - результаты доставки SOS-вебхуков (success, failed, breaker_open)
	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "deliveries_total",
			Help:      "SOS webhook delivery outcomes",
		},
		[]string{"result"},
	)

	// WebhookCircuitBreakerState - 0 closed, 1 open, 2 half-open
	WebhookCircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "circuit_breaker_state",
			Help:      "State of the SOS webhook circuit breaker",
		},
	)

	// LiveClients - подключенные websocket-клиенты
	LiveClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "clients",
			Help:      "Connected live map clients",
		},
	)
)
