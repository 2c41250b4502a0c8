package tui

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-canvas/internal/render"
)

func TestMetricsEndpoint(t *testing.T) {
	ObserveFrame(render.FrameStats{Mode: render.PresentFull, Bytes: 64})
	ObserveFrame(render.FrameStats{Mode: render.PresentDirty, Regions: 3, Bytes: 12, Dropped: 1})
	ObserveFrame(render.FrameStats{Mode: render.PresentIdle, Err: errors.New("broken pipe")})

	srv := httptest.NewServer(MetricsHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body failed: %v", err)
	}

	for _, want := range []string{
		`canvas_frames_presented_total{mode="full"}`,
		`canvas_frames_presented_total{mode="dirty"}`,
		`canvas_frames_presented_total{mode="idle"}`,
		"canvas_bytes_written_total",
		"canvas_dirty_regions_bucket",
		"canvas_output_dropped_total",
		"canvas_sink_errors_total",
		"canvas_sessions_active",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		rate int
		want string
	}{
		{30, "33.333333ms"},
		{60, "16.666666ms"},
		{0, "33.333333ms"},
		{-5, "33.333333ms"},
	}

	for _, tc := range tests {
		if got := frameInterval(tc.rate).String(); got != tc.want {
			t.Errorf("frameInterval(%d) = %s, expected %s", tc.rate, got, tc.want)
		}
	}
}
