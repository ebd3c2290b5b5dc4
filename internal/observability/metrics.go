package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "qrcctl",
			Subsystem: "protocol",
			Name:      "frames_received_total",
			Help:      "Complete frames extracted from the inbound stream.",
		},
	)
	framesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "qrcctl",
			Subsystem: "protocol",
			Name:      "frames_sent_total",
			Help:      "Frames written to the socket, including heartbeats.",
		},
	)
	requestsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qrcctl",
			Subsystem: "protocol",
			Name:      "requests_sent_total",
			Help:      "Correlated requests written, by method.",
		},
		[]string{"method"},
	)
	heartbeatsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "qrcctl",
			Subsystem: "protocol",
			Name:      "heartbeats_sent_total",
			Help:      "NoOp keepalive frames written.",
		},
	)
	eventsReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "qrcctl",
			Subsystem: "protocol",
			Name:      "events_received_total",
			Help:      "Unsolicited engine status broadcasts received.",
		},
	)
	remoteErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qrcctl",
			Subsystem: "protocol",
			Name:      "remote_errors_total",
			Help:      "Error envelopes received from the core, by code.",
		},
		[]string{"code"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesReceived, framesSent, requestsSent, heartbeatsSent, eventsReceived, remoteErrors)
	})
}

func RecordFrameReceived() {
	RegisterMetrics()
	framesReceived.Inc()
}

func RecordFrameSent() {
	RegisterMetrics()
	framesSent.Inc()
}

func RecordRequestSent(method string) {
	RegisterMetrics()
	requestsSent.WithLabelValues(method).Inc()
}

func RecordHeartbeat() {
	RegisterMetrics()
	heartbeatsSent.Inc()
}

func RecordEvent() {
	RegisterMetrics()
	eventsReceived.Inc()
}

func RecordRemoteError(code int) {
	RegisterMetrics()
	remoteErrors.WithLabelValues(strconv.Itoa(code)).Inc()
}
