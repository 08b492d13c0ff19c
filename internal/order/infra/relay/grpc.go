package relay

import (
	"context"
	"fmt"
	"time"

	relayv1 "github.com/dwikikusuma/storefront/api/relay/v1"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type GRPCClient struct {
	conn    *grpc.ClientConn
	client  *relayv1.RelayServiceClient
	timeout time.Duration
}

func DialGRPC(addr string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial relay %s: %w", addr, err)
	}
	return &GRPCClient{
		conn:    conn,
		client:  relayv1.NewRelayServiceClient(conn),
		timeout: timeout,
	}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) SendOrder(ctx context.Context, p domain.Payload) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.SendOrder(ctx, toWire(p))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	if !resp.Success {
		return fmt.Errorf("%w: %s", ErrRejected, resp.Message)
	}
	return nil
}

func toWire(p domain.Payload) *relayv1.SendOrderRequest {
	items := make([]relayv1.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, relayv1.OrderItem{
			Name:     it.Name,
			Quantity: int64(it.Quantity),
			Price:    it.Price,
		})
	}
	return &relayv1.SendOrderRequest{
		CustomerName: p.CustomerName,
		Phone:        p.Phone,
		Region:       p.Region,
		Items:        items,
		TotalPrice:   p.TotalPrice,
	}
}
