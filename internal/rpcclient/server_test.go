package rpcclient

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// agentFunc answers one method call of the fake agent.
type agentFunc func(req *structpb.Struct) (map[string]any, error)

// fakeAgent serves any /ranenv.v1.* method over bufconn and records the
// requests it received.
type fakeAgent struct {
	mu       sync.Mutex
	handlers map[string]agentFunc
	requests map[string]*structpb.Struct
}

func (a *fakeAgent) handle(_ any, stream grpc.ServerStream) error {
	method, _ := grpc.MethodFromServerStream(stream)
	req := new(structpb.Struct)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}

	a.mu.Lock()
	a.requests[method] = req
	fn := a.handlers[method]
	a.mu.Unlock()

	body := map[string]any{}
	if fn != nil {
		var err error
		if body, err = fn(req); err != nil {
			return err
		}
	}
	resp, err := structpb.NewStruct(body)
	if err != nil {
		return err
	}
	return stream.SendMsg(resp)
}

func (a *fakeAgent) request(method string) *structpb.Struct {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests[method]
}

// startAgent serves handlers on an in-memory listener and returns a READY
// connection to it.
func startAgent(t *testing.T, handlers map[string]agentFunc) (*grpc.ClientConn, *fakeAgent) {
	t.Helper()

	agent := &fakeAgent{handlers: handlers, requests: map[string]*structpb.Struct{}}
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnknownServiceHandler(agent.handle))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := Dial(ctx, DialConfig{
		Target:       "passthrough:///bufnet",
		ReadyTimeout: 5 * time.Second,
		PollInterval: 10 * time.Millisecond,
		Options: []grpc.DialOption{
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
				return lis.DialContext(ctx)
			}),
		},
	})
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn, agent
}
