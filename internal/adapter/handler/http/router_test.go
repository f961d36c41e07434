package http

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeStopsOnShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := &Router{router: gin.New()}

	done := make(chan error, 1)
	go func() {
		done <- router.Serve("127.0.0.1:0")
	}()

	require.Eventually(t, func() bool {
		router.mu.Lock()
		defer router.mu.Unlock()
		return router.server != nil
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, router.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err, "a shutdown-triggered stop is not an error")
	case <-time.After(2 * time.Second):
		t.Fatal("server kept running after shutdown")
	}
}

func TestShutdownBeforeServe(t *testing.T) {
	router := &Router{router: gin.New()}
	assert.NoError(t, router.Shutdown(context.Background()))
}
