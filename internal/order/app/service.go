package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

const DefaultSuccessDelay = 2 * time.Second

type Option func(*Service)

func WithSuccessDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.successDelay = d
		}
	}
}

// WithOutcomeHook is called once per submission attempt with one of the
// Outcome* values.
func WithOutcomeHook(fn func(outcome string)) Option {
	return func(s *Service) { s.onOutcome = fn }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// Service keeps one Checkout per session.
type Service struct {
	cart         CartSource
	relay        Relay
	log          *slog.Logger
	successDelay time.Duration
	onOutcome    func(string)

	mu        sync.Mutex
	checkouts map[string]*Checkout
}

func NewService(cart CartSource, relay Relay, opts ...Option) *Service {
	s := &Service{
		cart:         cart,
		relay:        relay,
		log:          slog.Default(),
		successDelay: DefaultSuccessDelay,
		checkouts:    make(map[string]*Checkout),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Checkout(sessionID string) (*Checkout, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.checkouts[sessionID]
	if !ok {
		c = newCheckout(sessionID, s.cart, s.relay, s.log, s.successDelay, s.onOutcome)
		s.checkouts[sessionID] = c
	}
	return c, nil
}

func (s *Service) View(_ context.Context, sessionID string) (View, error) {
	c, err := s.Checkout(sessionID)
	if err != nil {
		return View{}, err
	}
	return c.View(), nil
}

func (s *Service) UpdateForm(_ context.Context, sessionID string, p FormPatch) (View, error) {
	c, err := s.Checkout(sessionID)
	if err != nil {
		return View{}, err
	}
	v, err := c.Update(p)
	if err != nil {
		return v, err
	}
	v.Errors = c.Validate()
	return v, nil
}

// Submit optionally applies a form patch and then submits.
func (s *Service) Submit(ctx context.Context, sessionID string, p *FormPatch) (View, domain.Payload, error) {
	c, err := s.Checkout(sessionID)
	if err != nil {
		return View{}, domain.Payload{}, err
	}
	if p != nil && !p.empty() {
		if _, err := c.Update(*p); err != nil {
			return c.View(), domain.Payload{}, err
		}
	}

	payload, err := c.Submit(ctx)
	return c.View(), payload, err
}

// Sweep forgets checkouts that sat idle in the editing state for longer
// than idle.
func (s *Service) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-idle)
	n := 0
	for id, c := range s.checkouts {
		touched, editing := c.idleSince()
		if editing && touched.Before(cutoff) {
			delete(s.checkouts, id)
			n++
		}
	}
	return n
}

// Close runs pending post-success resets so no cart outlives a delivered
// order.
func (s *Service) Close() {
	s.mu.Lock()
	all := make([]*Checkout, 0, len(s.checkouts))
	for _, c := range s.checkouts {
		all = append(all, c)
	}
	s.mu.Unlock()

	for _, c := range all {
		c.stop()
	}
}
