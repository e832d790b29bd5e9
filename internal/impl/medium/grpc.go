package medium

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "grpc",
			Args: docs.ArgSpecs{
				{Dest: "grpc_target", Type: docs.FieldString, Description: "sink service address (host:port)", Required: true},
				{Dest: "grpc_method", Type: docs.FieldString, Description: "full method path invoked for each batch, e.g. /avalon.Sink/Write", Default: "/avalon.Sink/Write"},
			},
		},
		AutoSelectFlag: "grpc_target",
		Constructor:    newGRPC,
	}))
}

// grpcMedium issues one unary RPC per batch against a method path rather
// than a generated client stub, since the sink's service definition is
// external to this module; the batch payload travels as opaque bytes
// wrapped in a well-known BytesValue so any service speaking that
// contract can receive it without a shared .proto.
type grpcMedium struct {
	conn   *grpc.ClientConn
	method string
}

func newGRPC(attrs map[string]any) (medium.Type, error) {
	target, _ := attrs["target"].(string)
	method, _ := attrs["method"].(string)
	if method == "" {
		method = "/avalon.Sink/Write"
	}
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &grpcMedium{conn: conn, method: method}, nil
}

func (m *grpcMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	req := wrapperspb.Bytes(b.Payload)
	resp := &wrapperspb.BytesValue{}
	if err := m.conn.Invoke(ctx, m.method, req, resp); err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *grpcMedium) Close(ctx context.Context) error {
	return m.conn.Close()
}
