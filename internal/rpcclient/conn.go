package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Default readiness polling of Dial.
const (
	DefaultReadyTimeout = 30 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// DialConfig configures Dial.
type DialConfig struct {
	// Target is a gRPC target, e.g. "dns:///ue-1.lab:50051".
	Target string
	// Credentials defaults to insecure transport credentials.
	Credentials credentials.TransportCredentials
	// ReadyTimeout bounds the wait for READY. Zero uses
	// DefaultReadyTimeout; a negative value skips the wait.
	ReadyTimeout time.Duration
	// PollInterval zero uses DefaultPollInterval.
	PollInterval time.Duration
	// Options are appended after the credentials option.
	Options []grpc.DialOption
}

// Dial creates a client connection to cfg.Target and waits until it is
// READY. The caller owns the returned connection and must close it.
func Dial(ctx context.Context, cfg DialConfig) (*grpc.ClientConn, error) {
	if cfg.Target == "" {
		return nil, errors.New("dial: target must not be empty")
	}
	creds := cfg.Credentials
	if creds == nil {
		creds = insecure.NewCredentials()
	}
	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, cfg.Options...)

	conn, err := grpc.NewClient(cfg.Target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Target, err)
	}
	if cfg.ReadyTimeout < 0 {
		return conn, nil
	}

	timeout := cfg.ReadyTimeout
	if timeout == 0 {
		timeout = DefaultReadyTimeout
	}
	interval := cfg.PollInterval
	if interval == 0 {
		interval = DefaultPollInterval
	}
	if err := WaitReady(ctx, conn, interval, timeout); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
