// Package relayv1 declares the relay RPC service. Messages travel as JSON
// over gRPC (content-subtype "json"), so no protobuf toolchain is needed and
// the field names match the HTTP contract of the relay.
package relayv1

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	ServiceName     = "storefront.relay.v1.RelayService"
	SendOrderMethod = "/" + ServiceName + "/SendOrder"
	CodecName       = "json"
)

func init() {
	encoding.RegisterCodec(Codec{})
}

type OrderItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

type SendOrderRequest struct {
	CustomerName string      `json:"customerName"`
	Phone        string      `json:"phone"`
	Region       string      `json:"region"`
	Items        []OrderItem `json:"items"`
	TotalPrice   int64       `json:"totalPrice"`
}

type SendOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Codec implements encoding.Codec with encoding/json.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (Codec) Name() string                       { return CodecName }

type RelayServiceServer interface {
	SendOrder(context.Context, *SendOrderRequest) (*SendOrderResponse, error)
}

func RegisterRelayServiceServer(s grpc.ServiceRegistrar, srv RelayServiceServer) {
	s.RegisterService(&RelayServiceDesc, srv)
}

func sendOrderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SendOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelayServiceServer).SendOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SendOrderMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RelayServiceServer).SendOrder(ctx, req.(*SendOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var RelayServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RelayServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SendOrder", Handler: sendOrderHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/relay/v1/relay.go",
}

type RelayServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRelayServiceClient(cc grpc.ClientConnInterface) *RelayServiceClient {
	return &RelayServiceClient{cc: cc}
}

func (c *RelayServiceClient) SendOrder(ctx context.Context, in *SendOrderRequest, opts ...grpc.CallOption) (*SendOrderResponse, error) {
	out := new(SendOrderResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, SendOrderMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
