package main

import (
	"io"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"singate/internal/platform/config"
)

// A SIGTERM shutdown must return nil so main exits 0: supervisors treat a
// non-zero exit from a terminated pod as a crash.
func TestRun_StopsCleanlyOnSIGTERM(t *testing.T) {
	cfg := config.Config{
		Addr:          "127.0.0.1:0",
		AuditTopic:    "singate.validations",
		JWTSigningKey: "test-signing-key",
		RateLimit: config.RateLimitConfig{
			Limit:  60,
			Window: time.Minute,
		},
		RecentLimit: 10,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	done := make(chan error, 1)
	go func() { done <- run(cfg, log) }()

	// Let run install its signal handler and start listening.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after SIGTERM")
	}
}
