package services

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"ma-helper/internal/pkg/logger"
	"ma-helper/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronServicePing(t *testing.T) {
	var hits atomic.Int32
	status := atomic.Int32{}
	status.Store(http.StatusOK)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/test", r.URL.Path)
		hits.Add(1)
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	cfg := testutil.Config()
	cfg.Ping.ServiceURL = srv.URL + "/"
	svc := NewCronService(cfg, logger.Nop())

	require.NoError(t, svc.Ping(ctx))
	assert.EqualValues(t, 1, hits.Load())

	status.Store(http.StatusServiceUnavailable)
	assert.ErrorContains(t, svc.Ping(ctx), "503")
}

func TestCronServiceRejectsBadSchedule(t *testing.T) {
	cfg := testutil.Config()
	cfg.Ping.Schedule = "every now and then"

	svc := NewCronService(cfg, logger.Nop())
	assert.Error(t, svc.Start())
}

func TestCronServiceStartStop(t *testing.T) {
	cfg := testutil.Config()
	svc := NewCronService(cfg, logger.Nop())

	require.NoError(t, svc.Start())
	svc.Stop()
}
