package ranenv

import (
	"context"

	"google.golang.org/grpc"

	"github.com/giantswarm/ranenv/internal/rpcclient"
)

// DialConfig configures Dial. See the field documentation for defaults.
type DialConfig = rpcclient.DialConfig

// Dial connects to a remote entity agent and waits until the connection is
// ready. The caller must close the returned connection.
func Dial(ctx context.Context, cfg DialConfig) (*grpc.ClientConn, error) {
	return rpcclient.Dial(ctx, cfg)
}

// NewRemoteUE returns a UE handle calling the agent on conn. id names the
// UE in log output.
//
//nolint:ireturn // Returns the UE interface so callers can mix remote and fake handles.
func NewRemoteUE(conn grpc.ClientConnInterface, id string) UE {
	return rpcclient.NewUE(conn, id)
}

// NewRemoteBaseStation returns a BaseStation handle calling the agent on
// conn.
//
//nolint:ireturn // See NewRemoteUE.
func NewRemoteBaseStation(conn grpc.ClientConnInterface, id string) BaseStation {
	return rpcclient.NewBaseStation(conn, id)
}

// NewRemoteCoreNetwork returns a CoreNetwork handle calling the agent on
// conn.
//
//nolint:ireturn // See NewRemoteUE.
func NewRemoteCoreNetwork(conn grpc.ClientConnInterface, id string) CoreNetwork {
	return rpcclient.NewCoreNetwork(conn, id)
}
