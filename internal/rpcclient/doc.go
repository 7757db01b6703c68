// Package rpcclient implements entity handles over gRPC.
//
// Every call is a unary RPC on /ranenv.v1.<Service>/<Method> whose request
// and response are google.protobuf.Struct messages, so remote agents need
// no generated stubs. Services are UE, BaseStation and CoreNetwork.
//
// A remote refusal (codes.Aborted) is returned wrapping entity.ErrAborted;
// every other status error is returned wrapped with the method name.
package rpcclient
