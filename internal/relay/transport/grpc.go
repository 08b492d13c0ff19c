package transport

import (
	"context"
	"errors"

	relayv1 "github.com/dwikikusuma/storefront/api/relay/v1"
	"github.com/dwikikusuma/storefront/internal/relay/app"
	"github.com/dwikikusuma/storefront/internal/relay/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type GRPCServer struct {
	svc *app.Service
}

func NewGRPCServer(svc *app.Service) *GRPCServer {
	return &GRPCServer{svc: svc}
}

func (s *GRPCServer) SendOrder(ctx context.Context, req *relayv1.SendOrderRequest) (*relayv1.SendOrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "missing order")
	}
	if err := s.svc.Send(ctx, fromWire(req)); err != nil {
		return nil, mapErr(err)
	}
	return &relayv1.SendOrderResponse{Success: true, Message: successMessage}, nil
}

func fromWire(req *relayv1.SendOrderRequest) *domain.Order {
	items := make([]domain.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.Item{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return &domain.Order{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Region:       req.Region,
		Items:        items,
		TotalPrice:   req.TotalPrice,
	}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidOrder):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrMissingConfig):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, app.ErrUpstream):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

var _ relayv1.RelayServiceServer = (*GRPCServer)(nil)
