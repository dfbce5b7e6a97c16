package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/colixy-dashboard/internal/client/http/backend/dto"
	"github.com/you-humble/colixy-dashboard/internal/config"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

func TestMain(m *testing.M) {
	logger.SetNopLogger()
	m.Run()
}

func TestConcurrentFirstLogins(t *testing.T) {
	const operators = 64

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/login" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.Envelope[*dto.User]{
			Data: &dto.User{ID: "u1", Name: "Admin", Email: "admin@colixy.com", Role: "admin"},
		})
	}))
	t.Cleanup(backend.Close)

	for k, v := range map[string]string{
		"HTTP_HOST":         "127.0.0.1",
		"HTTP_PORT":         "0",
		"HTTP_READ_TIMEOUT": "5s",
		"SHUTDOWN_TIMEOUT":  "5s",
		"BACKEND_API_URL":   backend.URL,
		"BACKEND_IMAGE_URL": backend.URL,
		"BACKEND_API_KEY":   "test-key",
		"BACKEND_TIMEOUT":   "5s",
		"LOGGER_LEVEL":      "error",
		"LOGGER_AS_JSON":    "true",
		"SESSION_KEY":       "0123456789abcdef0123456789abcdef",
		"SESSION_SECURE":    "false",
		"KAFKA_ENABLED":     "false",
	} {
		t.Setenv(k, v)
	}
	require.NoError(t, config.Load())

	ctx := context.Background()
	d := NewDI()
	h := d.DashboardHandler(ctx)

	var (
		start = make(chan struct{})
		wg    sync.WaitGroup
		codes = make([]int, operators)
	)
	for i := 0; i < operators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"email":"admin@colixy.com","password":"secret1"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			<-start
			h.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}()
	}
	close(start)
	wg.Wait()

	for i, code := range codes {
		assert.Equal(t, http.StatusOK, code, "operator %d", i)
	}
	assert.Equal(t, operators, d.Sessions(ctx).Len())
}
