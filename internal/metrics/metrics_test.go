package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/pos_posting_engine/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_NilIsSafe(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() {
		r.ObservePosting("sale", false, nil)
		r.ObserveRefund(true)
		r.ObserveStockMovement("sale", errors.New("x"))
		r.ObserveLoanOperation("apply_payment", nil)
		r.ObserveRetry("post")
		r.ObserveConflict("post")
	})
	assert.Nil(t, r.Registry())
}

func TestRecorder_CountsPostings(t *testing.T) {
	r := metrics.New()
	r.ObservePosting("sale", false, nil)
	r.ObservePosting("sale", true, nil)
	r.ObservePosting("sale", false, errors.New("boom"))

	body := scrape(t, r)
	assert.Contains(t, body, `posting_engine_postings_total{outcome="ok",type="sale"} 1`)
	assert.Contains(t, body, `posting_engine_postings_total{outcome="noop",type="sale"} 1`)
	assert.Contains(t, body, `posting_engine_postings_total{outcome="error",type="sale"} 1`)
}

func scrape(t *testing.T, r *metrics.Recorder) string {
	t.Helper()
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestRecorder_Handler(t *testing.T) {
	r := metrics.New()
	r.ObserveRetry("apply_payment")

	assert.Contains(t, scrape(t, r), `posting_engine_unit_of_work_retries_total{operation="apply_payment"} 1`)
}
