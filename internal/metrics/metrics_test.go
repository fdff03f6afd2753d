package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Middleware)
	r.HandleFunc("/widgets/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Two distinct ids must land in one label set.
	for _, id := range []string{"64f000000000000000000001", "64f000000000000000000002"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets/"+id, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	count := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/widgets/{id}", "200"))
	assert.Equal(t, float64(2), count)
}

func TestRouteLabelOutsideRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	assert.Equal(t, "/healthz", routeLabel(req))
}
