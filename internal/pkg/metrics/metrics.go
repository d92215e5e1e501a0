// Package metrics defines the custom Prometheus collectors of the cepapp API.
// HTTP request metrics come from echoprometheus; the collectors here cover
// the postal lookup, access decisions and address creation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cepapp"

// ── Postal lookup ─────────────────────────────────────────────────────────────

// PostalLookupsTotal counts ViaCEP lookups.
// Label:
//   - outcome: "ok", "rejected" or "unreachable"
var PostalLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "postal_lookups_total",
		Help:      "Total number of postal code lookups, by outcome.",
	},
	[]string{"outcome"},
)

// PostalLookupDuration measures the round trip to the postal service.
var PostalLookupDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "postal_lookup_duration_seconds",
		Help:      "Duration of postal code lookups, including failures.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5},
	},
)

// ── Access decisions ──────────────────────────────────────────────────────────

// AuthzDecisionsTotal counts route-level access decisions.
// Labels:
//   - policy: the policy name (e.g. "public", "roles:ADMIN", "self_or_admin")
//   - result: "allow", "unauthenticated" or "forbidden"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of access decisions, by policy and result.",
	},
	[]string{"policy", "result"},
)

// ── Addresses ─────────────────────────────────────────────────────────────────

// AddressesCreatedTotal counts persisted addresses.
// Label:
//   - state: the two-letter state resolved for the zip code
var AddressesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "addresses_created_total",
		Help:      "Total number of addresses created, by state.",
	},
	[]string{"state"},
)
