// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getGaugeValue extracts the value from a Prometheus gauge
func getGaugeValue(gauge prometheus.Gauge) float64 {
	var m io_prometheus_client.Metric
	if err := gauge.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))

	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	if after != before+1 {
		t.Errorf("expected request counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := getGaugeValue(APIActiveRequests)

	TrackActiveRequest(true)
	if got := getGaugeValue(APIActiveRequests); got != before+1 {
		t.Errorf("expected %v active requests, got %v", before+1, got)
	}

	TrackActiveRequest(false)
	if got := getGaugeValue(APIActiveRequests); got != before {
		t.Errorf("expected %v active requests, got %v", before, got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	tests := []struct {
		name string
		kind string
		hit  bool
	}{
		{"poster hit", "poster", true},
		{"poster miss", "poster", false},
		{"trailer hit", "trailer", true},
		{"trailer miss", "trailer", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := CacheMisses.WithLabelValues(tt.kind)
			if tt.hit {
				counter = CacheHits.WithLabelValues(tt.kind)
			}
			before := testutil.ToFloat64(counter)
			RecordCacheLookup(tt.kind, tt.hit)
			if after := testutil.ToFloat64(counter); after != before+1 {
				t.Errorf("expected counter to increase by 1, got %v -> %v", before, after)
			}
		})
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("not_found"))
	RecordRecommendation("not_found", time.Millisecond)
	if after := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("not_found")); after != before+1 {
		t.Errorf("expected not_found counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestRecordEvents(t *testing.T) {
	okBefore := testutil.ToFloat64(EventsPublished.WithLabelValues("recommendation.served", "success"))
	failBefore := testutil.ToFloat64(EventsConsumed.WithLabelValues("recommendation.served", "failure"))

	RecordEventPublished("recommendation.served", nil)
	RecordEventConsumed("recommendation.served", errors.New("bad payload"))

	if got := testutil.ToFloat64(EventsPublished.WithLabelValues("recommendation.served", "success")); got != okBefore+1 {
		t.Errorf("published success = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(EventsConsumed.WithLabelValues("recommendation.served", "failure")); got != failBefore+1 {
		t.Errorf("consumed failure = %v, want %v", got, failBefore+1)
	}
}
