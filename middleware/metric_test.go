package middleware

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, method, path, status string) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, HttpRequestsTotal.WithLabelValues(method, path, status).Write(m))
	return m.GetCounter().GetValue()
}
