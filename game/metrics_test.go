package game

import (
	"context"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()
	m.ObserveRays(10, 4)
	m.ObserveRays(5, 1)
	m.ObserveEdit("create")
	m.ObserveEdit("create")
	m.ObserveEdit("delete")
	m.ObserveState(Airborne)
	m.ObserveFrame(0.02)

	assert.Equal(t, 15.0, testutil.ToFloat64(m.RaysCast))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.RayHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BlockEdits.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BlockEdits.WithLabelValues("delete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlayerState))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FrameSeconds))

	m.ObserveState(Grounded)
	assert.Zero(t, testutil.ToFloat64(m.PlayerState))
}

func TestMetricsServe(t *testing.T) {
	m := NewMetrics()
	m.ObserveRays(3, 2)
	addr, err := m.Serve("127.0.0.1:0")
	require.NoError(t, err)
	defer func() { assert.NoError(t, m.Close(context.Background())) }()

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "termcraft_rays_cast_total 3"), string(body))
}

func TestMetricsCloseWithoutServe(t *testing.T) {
	assert.NoError(t, NewMetrics().Close(context.Background()))
}
