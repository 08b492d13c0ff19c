package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrSubmissionInFlight = errors.New("order submission in progress")
	ErrSubmitFailed       = errors.New("order was not sent")
)

const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// FormPatch updates only the non-nil fields.
type FormPatch struct {
	CustomerName *string `json:"customerName"`
	Phone        *string `json:"phone"`
	Region       *string `json:"region"`
}

func (p FormPatch) empty() bool {
	return p.CustomerName == nil && p.Phone == nil && p.Region == nil
}

type View struct {
	State  domain.State            `json:"state"`
	Form   domain.Form             `json:"form"`
	Notice *domain.Notice          `json:"notice,omitempty"`
	Errors domain.ValidationErrors `json:"errors,omitempty"`
}

// Checkout is the order pipeline of a single session:
// editing -> submitting -> success | editing. A failure is reported through
// the notice only. Success removes the ordered lines from the cart and
// blanks the form after successDelay.
type Checkout struct {
	mu sync.Mutex

	sessionID    string
	cart         CartSource
	relay        Relay
	log          *slog.Logger
	successDelay time.Duration
	onOutcome    func(string)
	now          func() time.Time

	state      domain.State
	form       domain.Form
	notice     *domain.Notice
	resetTimer *time.Timer
	ordered    []domain.CartLine
	touched    time.Time
}

func newCheckout(sessionID string, cart CartSource, relay Relay, log *slog.Logger, successDelay time.Duration, onOutcome func(string)) *Checkout {
	c := &Checkout{
		sessionID:    sessionID,
		cart:         cart,
		relay:        relay,
		log:          log,
		successDelay: successDelay,
		onOutcome:    onOutcome,
		now:          time.Now,
		state:        domain.StateEditing,
		form:         domain.EmptyForm(),
	}
	c.touched = c.now()
	return c
}

func (c *Checkout) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Checkout) Form() domain.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Checkout) Notice() *domain.Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notice == nil {
		return nil
	}
	n := *c.notice
	return &n
}

func (c *Checkout) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Checkout) viewLocked() View {
	v := View{State: c.state, Form: c.form}
	if c.notice != nil {
		n := *c.notice
		v.Notice = &n
	}
	return v
}

// Update applies a form patch. The phone is normalized on every update.
// The form is frozen while a submission is in flight or just succeeded.
func (c *Checkout) Update(p FormPatch) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touched = c.now()
	if c.state != domain.StateEditing {
		return c.viewLocked(), ErrSubmissionInFlight
	}
	if p.CustomerName != nil {
		c.form.CustomerName = *p.CustomerName
	}
	if p.Phone != nil {
		c.form.Phone = domain.NormalizePhone(*p.Phone)
	}
	if p.Region != nil {
		c.form.Region = *p.Region
	}
	return c.viewLocked(), nil
}

func (c *Checkout) SetCustomerName(name string) error {
	_, err := c.Update(FormPatch{CustomerName: &name})
	return err
}

func (c *Checkout) SetPhone(raw string) error {
	_, err := c.Update(FormPatch{Phone: &raw})
	return err
}

func (c *Checkout) SetRegion(region string) error {
	_, err := c.Update(FormPatch{Region: &region})
	return err
}

// Validate reports field errors without submitting.
func (c *Checkout) Validate() domain.ValidationErrors {
	return c.Form().Validate()
}

// Submit validates the form, snapshots the cart and sends the order to the
// relay exactly once. Relay failures come back wrapped in ErrSubmitFailed
// with the cart and form left as they were.
func (c *Checkout) Submit(ctx context.Context) (domain.Payload, error) {
	c.mu.Lock()
	c.touched = c.now()
	if c.state != domain.StateEditing {
		c.mu.Unlock()
		return domain.Payload{}, ErrSubmissionInFlight
	}
	if errs := c.form.Validate(); errs != nil {
		c.mu.Unlock()
		c.record(OutcomeRejected)
		return domain.Payload{}, errs
	}

	lines, err := c.cart.Lines(ctx, c.sessionID)
	if err != nil {
		c.mu.Unlock()
		return domain.Payload{}, fmt.Errorf("read cart: %w", err)
	}
	if len(lines) == 0 {
		c.mu.Unlock()
		c.record(OutcomeRejected)
		return domain.Payload{}, ErrEmptyCart
	}

	payload := domain.NewPayload(c.form, lines)
	c.state = domain.StateSubmitting
	c.notice = nil
	c.mu.Unlock()

	// once sent, the order is not abandoned with the caller
	sendErr := c.send(context.WithoutCancel(ctx), payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if sendErr != nil {
		n := domain.FailureNotice
		c.notice = &n
		c.log.Error("order submission failed",
			slog.String("session", c.sessionID),
			slog.Int("items", len(payload.Items)),
			slog.Int64("total", payload.TotalPrice),
			slog.Any("err", sendErr))
		c.state = domain.StateEditing
		c.record(OutcomeFailure)
		return payload, fmt.Errorf("%w: %w", ErrSubmitFailed, sendErr)
	}

	c.state = domain.StateSuccess
	c.ordered = lines
	n := domain.SuccessNotice
	c.notice = &n
	c.log.Info("order submitted",
		slog.String("session", c.sessionID),
		slog.Int("items", len(payload.Items)),
		slog.Int64("total", payload.TotalPrice))
	c.resetTimer = time.AfterFunc(c.successDelay, c.reset)
	c.record(OutcomeSuccess)
	return payload, nil
}

func (c *Checkout) send(ctx context.Context, p domain.Payload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("relay panic: %v", r)
		}
	}()
	return c.relay.SendOrder(ctx, p)
}

func (c *Checkout) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateSuccess {
		return
	}
	if err := c.cart.Remove(context.Background(), c.sessionID, c.ordered); err != nil {
		c.log.Error("clear cart after order failed", slog.String("session", c.sessionID), slog.Any("err", err))
	}
	c.ordered = nil
	c.form = domain.EmptyForm()
	c.state = domain.StateEditing
	c.resetTimer = nil
	c.touched = c.now()
}

// stop runs a pending reset immediately.
func (c *Checkout) stop() {
	c.mu.Lock()
	t := c.resetTimer
	c.mu.Unlock()

	if t != nil && t.Stop() {
		c.reset()
	}
}

func (c *Checkout) idleSince() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched, c.state == domain.StateEditing
}

func (c *Checkout) record(outcome string) {
	if c.onOutcome != nil {
		c.onOutcome(outcome)
	}
}
