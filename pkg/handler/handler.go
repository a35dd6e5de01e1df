// Package handler drives plugin activation: capability probing, local
// storage injection, and the initialize/execute lifecycle.
package handler

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/scriptrunner/pluginsdk/pkg/localstore"
	"github.com/scriptrunner/pluginsdk/pkg/observability"
	"github.com/scriptrunner/pluginsdk/pkg/pluginapi"
)

// Activator runs a validated plugin through its activation sequence.
type Activator struct {
	log     *logrus.Logger
	metrics *observability.Metrics

	// newStore builds the local storage injected into consumers. Tests
	// swap it; production uses localstore.New.
	newStore func() pluginapi.LocalStorage
}

// New creates an activator. A nil logger gets a default.
func New(log *logrus.Logger) *Activator {
	if log == nil {
		log = logrus.New()
	}
	return &Activator{
		log:      log,
		newStore: func() pluginapi.LocalStorage { return localstore.New() },
	}
}

// SetMetrics attaches Prometheus metrics to the activator.
func (a *Activator) SetMetrics(m *observability.Metrics) {
	a.metrics = m
}

// Activate runs exactly one activation sequence for the plugin, picked by
// capability in fixed priority order: asynchronous service-registering,
// asynchronous, synchronous service-registering, then plain. A plugin that
// consumes local storage gets a fresh store injected before anything else.
//
// Errors returned by the plugin's own code propagate unmodified — the
// activator never wraps or swallows them.
func (a *Activator) Activate(ctx context.Context, p pluginapi.Plugin, settings []pluginapi.Setting, registry pluginapi.ServiceRegistry) error {
	if consumer, ok := p.(pluginapi.LocalStorageConsumer); ok {
		consumer.SetLocalStorage(a.newStore())
		a.log.Debugf("Injected local storage into plugin %q", p.Name())
	}

	switch plugin := p.(type) {
	case pluginapi.AsyncServicePlugin:
		a.count("async-service")
		if err := plugin.RegisterServicesContext(ctx, registry); err != nil {
			return err
		}
		if err := plugin.InitializeContext(ctx, settings); err != nil {
			return err
		}
		return plugin.ExecuteContext(ctx)

	case pluginapi.AsyncPlugin:
		a.count("async")
		if err := plugin.InitializeContext(ctx, settings); err != nil {
			return err
		}
		return plugin.ExecuteContext(ctx)

	case pluginapi.ServiceRegistrar:
		a.count("service")
		if err := plugin.RegisterServices(registry); err != nil {
			return err
		}
		if err := plugin.Initialize(settings); err != nil {
			return err
		}
		return plugin.Execute()

	default:
		a.count("plain")
		if err := p.Initialize(settings); err != nil {
			return err
		}
		return p.Execute()
	}
}

// Start invokes the lifecycle start hook when the plugin has one.
func (a *Activator) Start(p pluginapi.Plugin) error {
	if lc, ok := p.(pluginapi.Lifecycle); ok {
		return lc.OnStart()
	}
	return nil
}

// Stop invokes the lifecycle stop hook when the plugin has one.
func (a *Activator) Stop(p pluginapi.Plugin) error {
	if lc, ok := p.(pluginapi.Lifecycle); ok {
		return lc.OnStop()
	}
	return nil
}

// Dispose invokes the lifecycle dispose hook when the plugin has one.
func (a *Activator) Dispose(p pluginapi.Plugin) {
	if lc, ok := p.(pluginapi.Lifecycle); ok {
		lc.OnDispose()
	}
}

func (a *Activator) count(capability string) {
	if a.metrics != nil {
		a.metrics.ActivationsTotal.WithLabelValues(capability).Inc()
	}
}
