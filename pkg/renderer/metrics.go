package renderer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesShown = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sightview",
		Name:      "frames_shown_total",
		Help:      "Frames shown per surface.",
	}, []string{"surface"})

	overlaysDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sightview",
		Name:      "overlays_drawn_total",
		Help:      "Classification results drawn onto the color view.",
	})

	overlaysClipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sightview",
		Name:      "overlays_clipped_total",
		Help:      "Classification results whose box fell outside the depth extent.",
	})

	readinessStops = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sightview",
		Name:      "readiness_stops_total",
		Help:      "Readiness queries that asked the pipeline to stop, by cause.",
	}, []string{"cause"})
)
