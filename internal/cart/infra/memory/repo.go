package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type entry struct {
	cart     *domain.Cart
	lastSeen time.Time
}

// Repo keeps session carts in process. Carts untouched for longer than the
// idle window are dropped by Sweep.
type Repo struct {
	mu    sync.Mutex
	carts map[string]*entry
	now   func() time.Time
}

func NewRepo() *Repo {
	return &Repo{
		carts: make(map[string]*entry),
		now:   time.Now,
	}
}

func (r *Repo) GetOrCreate(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.carts[sessionID]
	if !ok {
		e = &entry{cart: domain.NewCart()}
		r.carts[sessionID] = e
	}
	e.lastSeen = r.now()
	return e.cart, nil
}

func (r *Repo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

func (r *Repo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

// Sweep removes carts idle for longer than idle and reports how many went.
func (r *Repo) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for id, e := range r.carts {
		if e.lastSeen.Before(cutoff) {
			delete(r.carts, id)
			n++
		}
	}
	return n
}

// RunSweeper sweeps every interval until ctx is done.
func (r *Repo) RunSweeper(ctx context.Context, interval, idle time.Duration, log *slog.Logger) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := r.Sweep(idle); n > 0 {
				log.Debug("swept idle carts", slog.Int("count", n))
			}
		}
	}
}
