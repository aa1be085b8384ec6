package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AliasesCreated prometheus.Counter
	AliasesDeleted prometheus.Counter
	FieldsCreated  prometheus.Counter
	FieldsDeleted  prometheus.Counter
	SettingsSaved  *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AliasesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "siteadmin_aliases_created_total",
			Help: "Total number of site aliases created",
		}),
		AliasesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "siteadmin_aliases_deleted_total",
			Help: "Total number of site aliases deleted",
		}),
		FieldsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "siteadmin_profile_fields_created_total",
			Help: "Total number of profile field definitions created",
		}),
		FieldsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "siteadmin_profile_fields_deleted_total",
			Help: "Total number of profile field definitions deleted",
		}),
		SettingsSaved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "siteadmin_settings_saved_total",
			Help: "Total number of settings updates by section",
		}, []string{"section"}),
	}
}

func (m *Metrics) IncrementAliasesCreated() { m.AliasesCreated.Inc() }
func (m *Metrics) IncrementAliasesDeleted() { m.AliasesDeleted.Inc() }
func (m *Metrics) IncrementFieldsCreated()  { m.FieldsCreated.Inc() }
func (m *Metrics) IncrementFieldsDeleted()  { m.FieldsDeleted.Inc() }

func (m *Metrics) IncrementSettingsSaved(section string) {
	m.SettingsSaved.WithLabelValues(section).Inc()
}
