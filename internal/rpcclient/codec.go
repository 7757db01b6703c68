package rpcclient

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/giantswarm/ranenv/internal/entity"
)

const servicePrefix = "/ranenv.v1."

// Service names.
const (
	serviceUE          = "UE"
	serviceBaseStation = "BaseStation"
	serviceCore        = "CoreNetwork"
)

// fields is the request or response body before and after Struct encoding.
type fields = map[string]any

// invoke calls service/method with req and returns the decoded response.
func invoke(ctx context.Context, conn grpc.ClientConnInterface, service, method string, req fields) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: encode request: %w", service, method, err)
	}
	out := new(structpb.Struct)
	if err := conn.Invoke(ctx, servicePrefix+service+"/"+method, in, out); err != nil {
		return nil, mapError(service, method, err)
	}
	return out, nil
}

func mapError(service, method string, err error) error {
	if st, ok := status.FromError(err); ok && st.Code() == codes.Aborted {
		return fmt.Errorf("%s.%s: %w: %s", service, method, entity.ErrAborted, st.Message())
	}
	return fmt.Errorf("%s.%s: %w", service, method, err)
}

func seconds(d time.Duration) float64 {
	return d.Seconds()
}

func str(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

func num(s *structpb.Struct, key string) float64 {
	return s.GetFields()[key].GetNumberValue()
}

func boolean(s *structpb.Struct, key string) bool {
	return s.GetFields()[key].GetBoolValue()
}

func sub(s *structpb.Struct, key string) *structpb.Struct {
	return s.GetFields()[key].GetStructValue()
}

func encodeAttributes(attrs map[string]string) fields {
	out := make(fields, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func decodeAttributes(s *structpb.Struct) map[string]string {
	if len(s.GetFields()) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.GetFields()))
	for k, v := range s.GetFields() {
		out[k] = v.GetStringValue()
	}
	return out
}

func encodeSubscriber(sub entity.Subscriber) fields {
	return fields{"imsi": sub.IMSI, "key": sub.Key, "opc": sub.OPC}
}

func decodeSubscriber(s *structpb.Struct) entity.Subscriber {
	return entity.Subscriber{IMSI: str(s, "imsi"), Key: str(s, "key"), OPC: str(s, "opc")}
}

func encodeDefinition(d entity.Definition) fields {
	return fields{
		"id":            d.ID,
		"kind":          d.Kind.String(),
		"subscriber":    encodeSubscriber(d.Subscriber),
		"radio_address": d.RadioAddress,
		"attributes":    encodeAttributes(d.Attributes),
	}
}

// decodeDefinition reads a definition; the kind is the handle's own since
// agents report it only informationally.
func decodeDefinition(s *structpb.Struct, kind entity.Kind) entity.Definition {
	return entity.Definition{
		ID:           str(s, "id"),
		Kind:         kind,
		Subscriber:   decodeSubscriber(sub(s, "subscriber")),
		RadioAddress: str(s, "radio_address"),
		Attributes:   decodeAttributes(sub(s, "attributes")),
	}
}

func encodeStart(p entity.StartParams) fields {
	return fields{
		"timeout_seconds": seconds(p.Timeout),
		"pre_commands":    p.PreCommands,
		"post_commands":   p.PostCommands,
	}
}

func decodeStopOutcome(s *structpb.Struct) entity.StopOutcome {
	return entity.StopOutcome{
		ExitCode:     int(num(s, "exit_code")),
		ErrorCount:   int(num(s, "error_count")),
		FirstError:   str(s, "first_error"),
		WarningCount: int(num(s, "warning_count")),
		FirstWarning: str(s, "first_warning"),
	}
}

func decodeMetrics(s *structpb.Struct) entity.Metrics {
	return entity.Metrics{
		KOs:             uint64(num(s, "kos")),
		Retransmissions: uint64(num(s, "retransmissions")),
	}
}

func decodePing(s *structpb.Struct) entity.PingResult {
	return entity.PingResult{
		Status:      boolean(s, "status"),
		Transmitted: int(num(s, "transmitted")),
		Received:    int(num(s, "received")),
		Summary:     str(s, "summary"),
	}
}

func encodeListener(ref entity.ListenerRef) fields {
	return fields{"id": ref.ID, "address": ref.Address, "port": ref.Port}
}

func decodeListener(s *structpb.Struct) entity.ListenerRef {
	return entity.ListenerRef{ID: str(s, "id"), Address: str(s, "address"), Port: int(num(s, "port"))}
}
