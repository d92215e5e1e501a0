package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorsCount(t *testing.T) {
	before := testutil.ToFloat64(PostalLookupsTotal.WithLabelValues("rejected"))
	PostalLookupsTotal.WithLabelValues("rejected").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PostalLookupsTotal.WithLabelValues("rejected")))

	before = testutil.ToFloat64(AuthzDecisionsTotal.WithLabelValues("self_or_admin", "forbidden"))
	AuthzDecisionsTotal.WithLabelValues("self_or_admin", "forbidden").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(AuthzDecisionsTotal.WithLabelValues("self_or_admin", "forbidden")))
}

func TestCollectorNames(t *testing.T) {
	assert.Equal(t, 1, testutil.CollectAndCount(AddressesCreatedTotal.WithLabelValues("DF"), "cepapp_addresses_created_total"))
	PostalLookupDuration.Observe(0.1)
	assert.Equal(t, 1, testutil.CollectAndCount(PostalLookupDuration, "cepapp_postal_lookup_duration_seconds"))
}
