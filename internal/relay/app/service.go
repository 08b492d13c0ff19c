package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwikikusuma/storefront/internal/relay/domain"
	"github.com/google/uuid"
)

var (
	ErrMissingConfig = errors.New("telegram configuration is missing")
	ErrInvalidOrder  = errors.New("invalid order")
	ErrUpstream      = errors.New("telegram api error")
)

// DefaultPublishTimeout bounds how long an acknowledged order waits on the
// event publisher.
const DefaultPublishTimeout = 500 * time.Millisecond

type Option func(*Service)

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

type Service struct {
	creds          Credentials
	messenger      Messenger
	publisher      EventPublisher
	publishTimeout time.Duration
	log            *slog.Logger
	now            func() time.Time
}

func NewService(creds Credentials, messenger Messenger, opts ...Option) *Service {
	s := &Service{
		creds:          creds,
		messenger:      messenger,
		publishTimeout: DefaultPublishTimeout,
		log:            slog.Default(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send renders the order and delivers it in a single messenger call.
func (s *Service) Send(ctx context.Context, o *domain.Order) error {
	if o == nil {
		return ErrInvalidOrder
	}
	if !s.creds.complete() {
		s.log.Error("telegram credentials not configured")
		return ErrMissingConfig
	}

	s.log.Info("order received",
		slog.String("region", o.Region),
		slog.Int("items", len(o.Items)),
		slog.Int64("total", o.TotalPrice))

	if err := s.messenger.SendMessage(ctx, s.creds, domain.FormatMessage(*o)); err != nil {
		s.log.Error("telegram send failed", slog.Any("err", err))
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	s.publish(ctx, o)
	return nil
}

func (s *Service) publish(ctx context.Context, o *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.Event{
		EventID:    uuid.NewString(),
		Type:       domain.EventOrderNotified,
		OccurredAt: s.now().UTC(),
		Region:     o.Region,
		ItemCount:  len(o.Items),
		TotalPrice: o.TotalPrice,
	}

	// the message is already delivered; the event must not hold the reply
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn("order event publish failed", slog.String("event_id", evt.EventID), slog.Any("err", err))
	}
}
