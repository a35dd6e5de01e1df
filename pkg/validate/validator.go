// Package validate enforces the structural and compatibility rules a plugin
// must satisfy before activation.
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"

	"github.com/scriptrunner/pluginsdk/pkg/observability"
	"github.com/scriptrunner/pluginsdk/pkg/pluginapi"
)

// Validator checks discovered plugins against the host's compatibility
// contract.
type Validator struct {
	log     *logrus.Logger
	metrics *observability.Metrics
}

// New creates a validator. A nil logger gets a default.
func New(log *logrus.Logger) *Validator {
	if log == nil {
		log = logrus.New()
	}
	return &Validator{log: log}
}

// SetMetrics attaches Prometheus metrics to the validator.
func (v *Validator) SetMetrics(m *observability.Metrics) {
	v.metrics = m
}

// Validate checks a discovered candidate and its metadata record. A nil
// error means the plugin may be activated. All failures are reported as
// *pluginapi.InitError naming the offending plugin and field.
//
// Runtime-version compatibility is an exact match against
// pluginapi.RuntimeVersion; an empty declared runtime version means the
// plugin does not pin one and always passes that check.
func (v *Validator) Validate(candidate interface{}, meta *pluginapi.Metadata) error {
	typeName := fmt.Sprintf("%T", candidate)

	if candidate == nil {
		return v.fail(pluginapi.NewInitError(typeName, "candidate is nil"), "type")
	}

	plugin, ok := candidate.(pluginapi.Plugin)
	if !ok {
		return v.fail(pluginapi.NewInitError(typeName, "does not implement the plugin contract"), "type")
	}

	if meta == nil {
		return v.fail(pluginapi.NewInitError(typeName, "missing plugin metadata"), "metadata")
	}

	name := meta.Name
	if strings.TrimSpace(name) == "" {
		return v.fail(pluginapi.NewFieldError(typeName, "name", "must not be empty"), "name")
	}

	if strings.TrimSpace(meta.Version) == "" {
		return v.fail(pluginapi.NewFieldError(name, "version", "must not be empty"), "version")
	}
	if _, err := semver.NewVersion(meta.Version); err != nil {
		return v.fail(pluginapi.NewFieldError(name, "version",
			fmt.Sprintf("not a valid version: %s", meta.Version)), "version")
	}

	if strings.TrimSpace(meta.SystemVersion) == "" {
		return v.fail(pluginapi.NewFieldError(name, "systemVersion", "must not be empty"), "systemVersion")
	}
	if meta.SystemVersion != pluginapi.SystemVersion {
		return v.fail(pluginapi.NewFieldError(name, "systemVersion",
			fmt.Sprintf("plugin targets %s, host speaks %s", meta.SystemVersion, pluginapi.SystemVersion)),
			"systemVersion")
	}

	if meta.RuntimeVersion != "" && meta.RuntimeVersion != pluginapi.RuntimeVersion {
		return v.fail(pluginapi.NewFieldError(name, "runtimeVersion",
			fmt.Sprintf("plugin targets %s, host runtime is %s", meta.RuntimeVersion, pluginapi.RuntimeVersion)),
			"runtimeVersion")
	}

	if _, registers := plugin.(pluginapi.ServiceRegistrar); registers && len(meta.Services) > 0 {
		if err := v.checkDeclaredServices(name, plugin, meta.Services); err != nil {
			return v.fail(err, "services")
		}
	}

	v.log.Debugf("Plugin %q passed validation", name)
	return nil
}

// checkDeclaredServices verifies every declared service exists as a method
// on the concrete plugin type. Lookup goes through reflection, so only
// exported methods are visible.
func (v *Validator) checkDeclaredServices(name string, plugin pluginapi.Plugin, services []string) *pluginapi.InitError {
	pluginType := reflect.TypeOf(plugin)
	for _, service := range services {
		if _, found := pluginType.MethodByName(service); !found {
			return pluginapi.NewFieldError(name, "services",
				fmt.Sprintf("declared service %q is not implemented", service))
		}
	}
	return nil
}

func (v *Validator) fail(err *pluginapi.InitError, field string) error {
	if v.metrics != nil {
		v.metrics.ValidationFailuresTotal.WithLabelValues(field).Inc()
	}
	return err
}
