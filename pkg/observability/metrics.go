package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics exposed by the plugin subsystem.
type Metrics struct {
	PluginsTracked          prometheus.Gauge
	DependenciesTracked     prometheus.Gauge
	ScansTotal              prometheus.Counter
	ScanErrorsTotal         prometheus.Counter
	DependenciesLoadedTotal *prometheus.CounterVec
	NativeSkippedTotal      prometheus.Counter
	ValidationFailuresTotal *prometheus.CounterVec
	ActivationsTotal        *prometheus.CounterVec
}

// NewMetrics creates and registers the plugin subsystem metrics. Passing a
// nil registry registers against the default Prometheus registerer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		PluginsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scriptrunner_plugins_tracked",
			Help: "Number of main plugin libraries found by the last scan",
		}),
		DependenciesTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scriptrunner_plugin_dependencies_tracked",
			Help: "Number of dependency libraries found by the last scan",
		}),
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scriptrunner_plugin_scans_total",
			Help: "Total number of plugin directory scans",
		}),
		ScanErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scriptrunner_plugin_scan_errors_total",
			Help: "Total number of scans aborted by a missing plugin root",
		}),
		DependenciesLoadedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scriptrunner_plugin_dependencies_loaded_total",
				Help: "Dependencies loaded into isolated boundaries, by plugin",
			},
			[]string{"plugin"},
		),
		NativeSkippedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scriptrunner_plugin_native_libraries_skipped_total",
			Help: "Dependency files skipped as native or unsupported",
		}),
		ValidationFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scriptrunner_plugin_validation_failures_total",
				Help: "Plugin validation failures, by offending field",
			},
			[]string{"field"},
		),
		ActivationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scriptrunner_plugin_activations_total",
				Help: "Plugin activations, by capability branch",
			},
			[]string{"capability"},
		),
	}

	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	registry.MustRegister(
		m.PluginsTracked,
		m.DependenciesTracked,
		m.ScansTotal,
		m.ScanErrorsTotal,
		m.DependenciesLoadedTotal,
		m.NativeSkippedTotal,
		m.ValidationFailuresTotal,
		m.ActivationsTotal,
	)

	return m
}
