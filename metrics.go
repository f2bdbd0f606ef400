package feedkit

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "feedkit_client",
		Name:      "http_requests_total",
		Help:      "Requests sent to the backend, by method and status class.",
	},
	[]string{"method", "status"},
)

// observeRequest records one round trip. Transport failures count under
// the "error" status class.
func observeRequest(method string, resp *http.Response, err error) {
	status := "error"
	if err == nil && resp != nil {
		status = fmt.Sprintf("%dxx", resp.StatusCode/100)
	}
	httpRequestsTotal.WithLabelValues(method, status).Inc()
}
