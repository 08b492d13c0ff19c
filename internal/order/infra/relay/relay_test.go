package relay

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	relayv1 "github.com/dwikikusuma/storefront/api/relay/v1"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

var payload = domain.Payload{
	CustomerName: "Алишер",
	Phone:        "+998901234567",
	Region:       "Тошкент",
	Items:        []domain.Item{{Name: "A", Quantity: 2, Price: 1000}, {Name: "B", Quantity: 1, Price: 500}},
	TotalPrice:   2500,
}

func TestHTTPClient(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"ack", http.StatusOK, `{"success":true,"message":"Order sent successfully"}`, false},
		{"success false", http.StatusOK, `{"success":false,"error":"x"}`, true},
		{"server error", http.StatusInternalServerError, `{"success":false,"error":"Telegram configuration missing"}`, true},
		{"malformed body", http.StatusOK, `<html>`, true},
		{"missing flag", http.StatusOK, `{}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Payload
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewHTTPClient(srv.URL+"/send-order", time.Second).SendOrder(context.Background(), payload)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrRejected)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, payload, got)
		})
	}
}

func TestHTTPClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewHTTPClient(url, time.Second).SendOrder(context.Background(), payload)
	assert.Error(t, err)
}

type fakeRelayServer struct {
	resp *relayv1.SendOrderResponse
	err  error
	got  *relayv1.SendOrderRequest
}

func (f *fakeRelayServer) SendOrder(_ context.Context, req *relayv1.SendOrderRequest) (*relayv1.SendOrderResponse, error) {
	f.got = req
	return f.resp, f.err
}

func dialBuf(t *testing.T, srv relayv1.RelayServiceServer) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	relayv1.RegisterRelayServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := DialGRPC("passthrough:///bufnet", time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGRPCClient(t *testing.T) {
	t.Run("ack", func(t *testing.T) {
		fake := &fakeRelayServer{resp: &relayv1.SendOrderResponse{Success: true}}
		c := dialBuf(t, fake)

		require.NoError(t, c.SendOrder(context.Background(), payload))
		require.NotNil(t, fake.got)
		assert.Equal(t, int64(2500), fake.got.TotalPrice)
		assert.Equal(t, int64(2), fake.got.Items[0].Quantity)
	})

	t.Run("status error", func(t *testing.T) {
		c := dialBuf(t, &fakeRelayServer{err: status.Error(codes.FailedPrecondition, "Telegram configuration missing")})

		err := c.SendOrder(context.Background(), payload)
		require.ErrorIs(t, err, ErrRejected)
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	})

	t.Run("not successful", func(t *testing.T) {
		c := dialBuf(t, &fakeRelayServer{resp: &relayv1.SendOrderResponse{Success: false, Message: "nope"}})
		assert.ErrorIs(t, c.SendOrder(context.Background(), payload), ErrRejected)
	})
}
