package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sufuf_connections_active",
		Help: "Number of currently registered websocket connections.",
	})

	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sufuf_messages_received_total",
		Help: "Inbound websocket frames handed to the protocol handler.",
	})

	UpdatesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sufuf_status_updates_total",
		Help: "Room status updates applied and broadcast.",
	})

	PayloadsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sufuf_payloads_dropped_total",
		Help: "Outbound payloads dropped because a connection could not take them.",
	})
)

// Handler exposes Prometheus metrics at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
