package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"k8s.io/apimachinery/pkg/util/wait"
)

var (
	// ErrIntervalNotPositive indicates a non-positive poll interval.
	ErrIntervalNotPositive = errors.New("interval must be positive")

	// ErrTimeoutNotPositive indicates a non-positive timeout.
	ErrTimeoutNotPositive = errors.New("timeout must be positive")

	// ErrConnShutdown indicates the connection was closed before it became
	// ready.
	ErrConnShutdown = errors.New("connection shut down before becoming ready")
)

// WaitReady polls conn until its connectivity state is READY, kicking idle
// connections into connecting. It fails fast once the connection is shut
// down.
func WaitReady(ctx context.Context, conn *grpc.ClientConn, interval, timeout time.Duration) error {
	target := conn.Target()
	if interval <= 0 {
		return fmt.Errorf("wait for %s: %w", target, ErrIntervalNotPositive)
	}
	if timeout <= 0 {
		return fmt.Errorf("wait for %s: %w", target, ErrTimeoutNotPositive)
	}

	log := Logger()

	// The condition runs sequentially, so attempt needs no synchronization.
	attempt := 0
	if err := wait.PollUntilContextTimeout(ctx, interval, timeout, true,
		func(context.Context) (bool, error) {
			attempt++
			switch state := conn.GetState(); state {
			case connectivity.Ready:
				log.Debug("connection ready", "target", target, "attempt", attempt)
				return true, nil
			case connectivity.Shutdown:
				return false, fmt.Errorf("connection to %s: %w", target, ErrConnShutdown)
			case connectivity.Idle:
				conn.Connect()
				return false, nil
			default:
				return false, nil
			}
		}); err != nil {
		return fmt.Errorf("wait for %s readiness: %w", target, err)
	}
	return nil
}
