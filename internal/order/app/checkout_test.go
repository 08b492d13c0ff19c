package app_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

func (f *fakeCart) Lines(_ context.Context, _ string) ([]domain.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.CartLine, len(f.lines))
	copy(out, f.lines)
	return out, nil
}

func (f *fakeCart) Remove(_ context.Context, _ string, ordered []domain.CartLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range ordered {
		for i := range f.lines {
			if f.lines[i].ProductID == o.ProductID {
				f.lines[i].Quantity -= o.Quantity
			}
		}
	}
	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return nil
}

func (f *fakeCart) add(l domain.CartLine) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lines {
		if f.lines[i].ProductID == l.ProductID {
			f.lines[i].Quantity += l.Quantity
			return
		}
	}
	f.lines = append(f.lines, l)
}

func (f *fakeCart) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lines)
}

type stubRelay struct {
	calls atomic.Int32
	fn    func(ctx context.Context, p domain.Payload) error

	mu   sync.Mutex
	last domain.Payload
}

func (s *stubRelay) SendOrder(ctx context.Context, p domain.Payload) error {
	s.calls.Add(1)
	s.mu.Lock()
	s.last = p
	s.mu.Unlock()
	if s.fn != nil {
		return s.fn(ctx, p)
	}
	return nil
}

func sampleCart() *fakeCart {
	return &fakeCart{lines: []domain.CartLine{
		{ProductID: "1", Name: "A", Quantity: 2, Price: 1000},
		{ProductID: "2", Name: "B", Quantity: 1, Price: 500},
	}}
}

func fillForm(t *testing.T, c *app.Checkout) {
	t.Helper()
	require.NoError(t, c.SetCustomerName("Алишер"))
	require.NoError(t, c.SetPhone("90 123 45 67"))
	require.NoError(t, c.SetRegion("Тошкент"))
}

func newService(cart app.CartSource, relay app.Relay, opts ...app.Option) *app.Service {
	opts = append([]app.Option{app.WithLogger(logger.Discard())}, opts...)
	return app.NewService(cart, relay, opts...)
}

func TestSubmitSuccessThenReset(t *testing.T) {
	cart := sampleCart()
	relay := &stubRelay{}
	var outcomes []string
	svc := newService(cart, relay,
		app.WithSuccessDelay(30*time.Millisecond),
		app.WithOutcomeHook(func(o string) { outcomes = append(outcomes, o) }))

	c, err := svc.Checkout("s1")
	require.NoError(t, err)
	fillForm(t, c)
	assert.Equal(t, "+998901234567", c.Form().Phone)

	payload, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2500), payload.TotalPrice)
	assert.Equal(t, []domain.Item{{Name: "A", Quantity: 2, Price: 1000}, {Name: "B", Quantity: 1, Price: 500}}, payload.Items)
	assert.Equal(t, int32(1), relay.calls.Load())
	assert.Equal(t, domain.StateSuccess, c.State())
	require.NotNil(t, c.Notice())
	assert.Equal(t, domain.SuccessNotice, *c.Notice())
	assert.Equal(t, []string{app.OutcomeSuccess}, outcomes)

	assert.ErrorIs(t, c.SetRegion("Бухоро"), app.ErrSubmissionInFlight, "form is frozen until reset")
	assert.Equal(t, 2, cart.len(), "cart is kept until the reset fires")

	require.Eventually(t, func() bool { return c.State() == domain.StateEditing }, time.Second, 5*time.Millisecond)
	assert.Zero(t, cart.len())
	assert.Equal(t, domain.EmptyForm(), c.Form())
	assert.Equal(t, "+998", c.Form().Phone)
}

func TestSubmitRelayFailureKeepsState(t *testing.T) {
	cart := sampleCart()
	relay := &stubRelay{fn: func(context.Context, domain.Payload) error {
		return errors.New("x")
	}}
	svc := newService(cart, relay)

	c, err := svc.Checkout("s1")
	require.NoError(t, err)
	fillForm(t, c)
	before := c.Form()

	_, err = c.Submit(context.Background())
	require.ErrorIs(t, err, app.ErrSubmitFailed)
	assert.Contains(t, err.Error(), "x")

	assert.Equal(t, domain.StateEditing, c.State())
	assert.Equal(t, before, c.Form())
	assert.Equal(t, 2, cart.len())
	require.NotNil(t, c.Notice())
	assert.Equal(t, domain.NoticeDestructive, c.Notice().Variant)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), relay.calls.Load(), "no automatic retry")

	relay.fn = nil
	_, err = c.Submit(context.Background())
	require.NoError(t, err, "the user may retry by hand")
	assert.Equal(t, int32(2), relay.calls.Load())
}

func TestSubmitValidationSkipsRelay(t *testing.T) {
	relay := &stubRelay{}
	svc := newService(sampleCart(), relay)

	c, err := svc.Checkout("s1")
	require.NoError(t, err)
	require.NoError(t, c.SetCustomerName("A"))

	_, err = c.Submit(context.Background())
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, domain.FieldCustomerName)
	assert.Contains(t, verrs, domain.FieldPhone)
	assert.Contains(t, verrs, domain.FieldRegion)
	assert.Zero(t, relay.calls.Load())
	assert.Equal(t, domain.StateEditing, c.State())
}

func TestSubmitEmptyCart(t *testing.T) {
	relay := &stubRelay{}
	svc := newService(&fakeCart{}, relay)

	c, err := svc.Checkout("s1")
	require.NoError(t, err)
	fillForm(t, c)

	_, err = c.Submit(context.Background())
	assert.ErrorIs(t, err, app.ErrEmptyCart)
	assert.Zero(t, relay.calls.Load())
}

func TestSubmitWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	relay := &stubRelay{fn: func(ctx context.Context, _ domain.Payload) error {
		close(entered)
		<-release
		return nil
	}}
	svc := newService(sampleCart(), relay, app.WithSuccessDelay(time.Hour))

	c, err := svc.Checkout("s1")
	require.NoError(t, err)
	fillForm(t, c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	<-entered
	assert.Equal(t, domain.StateSubmitting, c.State())
	_, err = c.Submit(context.Background())
	assert.ErrorIs(t, err, app.ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), relay.calls.Load())
}

func TestRelayPanicIsContained(t *testing.T) {
	cart := sampleCart()
	relay := &stubRelay{fn: func(context.Context, domain.Payload) error {
		panic("boom")
	}}
	svc := newService(cart, relay)

	c, err := svc.Checkout("s1")
	require.NoError(t, err)
	fillForm(t, c)

	_, err = c.Submit(context.Background())
	require.ErrorIs(t, err, app.ErrSubmitFailed)
	assert.Equal(t, domain.StateEditing, c.State())
	assert.Equal(t, 2, cart.len())
}

func TestServiceSubmitAppliesPatch(t *testing.T) {
	relay := &stubRelay{}
	svc := newService(sampleCart(), relay, app.WithSuccessDelay(time.Hour))

	name, phone, region := "Нодира", "+998 (93) 000-11-22", "Самарқанд"
	view, payload, err := svc.Submit(context.Background(), "s1", &app.FormPatch{
		CustomerName: &name, Phone: &phone, Region: &region,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateSuccess, view.State)
	assert.Equal(t, "+998930001122", payload.Phone)
	assert.Equal(t, "Самарқанд", relay.last.Region)

	svc.Close()
	view, err = svc.View(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateEditing, view.State, "Close flushes pending resets")
}

func TestUpdateFormReportsErrors(t *testing.T) {
	svc := newService(sampleCart(), &stubRelay{})

	phone := "1"
	view, err := svc.UpdateForm(context.Background(), "s1", app.FormPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "+9981", view.Form.Phone)
	assert.Contains(t, view.Errors, domain.FieldPhone)

	_, err = svc.UpdateForm(context.Background(), "", app.FormPatch{})
	assert.ErrorIs(t, err, app.ErrInvalidInput)
}

func TestSweepForgetsIdleCheckouts(t *testing.T) {
	svc := newService(sampleCart(), &stubRelay{})

	first, err := svc.Checkout("s1")
	require.NoError(t, err)
	assert.Equal(t, 0, svc.Sweep(time.Hour))
	assert.Equal(t, 1, svc.Sweep(-time.Second))

	second, err := svc.Checkout("s1")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestSubmitOutlivesCallerCancel(t *testing.T) {
	relay := &stubRelay{fn: func(ctx context.Context, _ domain.Payload) error {
		select {
		case <-time.After(200 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}}
	svc := newService(sampleCart(), relay, app.WithSuccessDelay(time.Hour))

	c, err := svc.Checkout("s1")
	require.NoError(t, err)
	fillForm(t, c)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	defer cancel()

	_, err = c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateSuccess, c.State())
	require.NotNil(t, c.Notice())
	assert.Equal(t, domain.SuccessNotice, *c.Notice())
}

func TestResetKeepsLinesAddedAfterSubmit(t *testing.T) {
	cart := sampleCart()
	svc := newService(cart, &stubRelay{}, app.WithSuccessDelay(time.Hour))

	c, err := svc.Checkout("s1")
	require.NoError(t, err)
	fillForm(t, c)

	_, err = c.Submit(context.Background())
	require.NoError(t, err)

	cart.add(domain.CartLine{ProductID: "1", Name: "A", Quantity: 1, Price: 1000})
	cart.add(domain.CartLine{ProductID: "3", Name: "C", Quantity: 4, Price: 250})

	svc.Close()
	require.Equal(t, domain.StateEditing, c.State())

	left, err := cart.Lines(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []domain.CartLine{
		{ProductID: "1", Name: "A", Quantity: 1, Price: 1000},
		{ProductID: "3", Name: "C", Quantity: 4, Price: 250},
	}, left)
}
