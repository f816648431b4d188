package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "board"

// Registry is the Prometheus registry for all board metrics.
var Registry = prometheus.NewRegistry()

// AppInfo exposes build information as labels, value is always 1.
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application build information (always 1, details in labels)",
	},
	[]string{"version", "commit"},
)

// Lifecycle sweep metrics.
var (
	SweepRuns = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Total number of lifecycle sweep executions",
		},
		[]string{"trigger", "result"},
	)

	SweepReclassified = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_events_reclassified_total",
			Help:      "Total number of events whose category changed during sweeps",
		},
	)

	SweepPurged = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_events_purged_total",
			Help:      "Total number of events removed by retention sweeps",
		},
	)
)

// ImageUploads counts relay attempts against the external image host.
var ImageUploads = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of image upload relays",
	},
	[]string{"result"},
)

// ImageDeletes counts delete relays against the external image host.
var ImageDeletes = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_deletes_total",
		Help:      "Total number of image delete relays",
	},
	[]string{"result"},
)

// Init registers runtime collectors and stamps build info.
func Init(version, commit string) {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	AppInfo.WithLabelValues(version, commit).Set(1)
}

// Handler serves the registry in Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
