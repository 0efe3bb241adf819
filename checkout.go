package storefront

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/nyaruka/phonenumbers"
)

// CheckoutState is the orchestrator's lifecycle value.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutSucceeded  CheckoutState = "succeeded"
	CheckoutFailed     CheckoutState = "failed"
)

// ShippingInput is the checkout form payload. ContactPhone is optional but
// must be a dialable number for Region when present.
type ShippingInput struct {
	Address       string `json:"shippingAddress"`
	PaymentMethod string `json:"paymentMethod"`
	ContactPhone  string `json:"contactPhone,omitempty"`
}

// DefaultPaymentMethod mirrors the storefront's only built-in option.
const DefaultPaymentMethod = "Cash on Delivery"

// OrderConfirmation reports a successful submission back to the shell.
type OrderConfirmation struct {
	OrderID   int64     `json:"order_id"`
	Reference string    `json:"reference,omitempty"`
	Total     float64   `json:"total"`
	PlacedAt  time.Time `json:"placed_at"`
}

// CheckoutOrchestrator turns a cart snapshot into a submitted order. It is a
// small state machine: idle -> submitting -> succeeded|failed, with retry
// allowed from failed. A second Submit while one is in flight is rejected,
// and the cart is cleared only after the backend accepts the order.
type CheckoutOrchestrator struct {
	mu           sync.Mutex
	state        CheckoutState
	transitions  map[CheckoutState]map[CheckoutState]struct{}
	cart         *CartStore
	orders       OrderGateway
	logger       Logger
	activitySink ActivitySink
	now          func() time.Time
	phoneRegion  string
	lastErr      error
}

// CheckoutOption customizes orchestrator construction.
type CheckoutOption func(*CheckoutOrchestrator)

// WithCheckoutClock injects a custom clock (useful for tests).
func WithCheckoutClock(clock func() time.Time) CheckoutOption {
	return func(o *CheckoutOrchestrator) {
		if clock != nil {
			o.now = clock
		}
	}
}

func WithCheckoutLogger(logger Logger) CheckoutOption {
	return func(o *CheckoutOrchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCheckoutActivitySink sets the ActivitySink used for checkout events.
func WithCheckoutActivitySink(sink ActivitySink) CheckoutOption {
	return func(o *CheckoutOrchestrator) {
		o.activitySink = normalizeActivitySink(sink)
	}
}

// WithCheckoutPhoneRegion sets the default region for contact phone
// validation. Defaults to US.
func WithCheckoutPhoneRegion(region string) CheckoutOption {
	return func(o *CheckoutOrchestrator) {
		if region != "" {
			o.phoneRegion = region
		}
	}
}

// NewCheckoutOrchestrator returns an idle orchestrator over the cart and
// order gateway.
func NewCheckoutOrchestrator(cart *CartStore, orders OrderGateway, opts ...CheckoutOption) *CheckoutOrchestrator {
	o := &CheckoutOrchestrator{
		state: CheckoutIdle,
		transitions: map[CheckoutState]map[CheckoutState]struct{}{
			CheckoutIdle: {
				CheckoutSubmitting: {},
			},
			CheckoutSubmitting: {
				CheckoutSucceeded: {},
				CheckoutFailed:    {},
			},
			CheckoutFailed: {
				CheckoutSubmitting: {},
			},
			CheckoutSucceeded: {
				CheckoutSubmitting: {},
			},
		},
		cart:         cart,
		orders:       orders,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
		now:          time.Now,
		phoneRegion:  "US",
	}

	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return o
}

// State returns the current lifecycle value.
func (o *CheckoutOrchestrator) State() CheckoutState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastError returns the failure that moved the machine into CheckoutFailed,
// nil otherwise.
func (o *CheckoutOrchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Validate checks the shipping input locally; invalid input is never sent to
// the backend.
func (o *CheckoutOrchestrator) Validate(input ShippingInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Address, validation.Required, validation.Length(5, 0)),
		validation.Field(&input.PaymentMethod, validation.Required),
		validation.Field(&input.ContactPhone, validation.By(o.validPhone)),
	)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid shipping input").
			WithCode(errors.CodeBadRequest)
	}
	return nil
}

func (o *CheckoutOrchestrator) validPhone(value any) error {
	phone, _ := value.(string)
	if phone == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(phone, o.phoneRegion)
	if err != nil {
		return fmt.Errorf("must be a valid phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return fmt.Errorf("must be a dialable phone number")
	}
	return nil
}

// Submit snapshots the cart, places the order, and reconciles local state
// with the outcome. On success the cart is cleared and a confirmation is
// returned; on failure the cart is left byte-for-byte intact and the machine
// can be retried with a fresh Submit.
func (o *CheckoutOrchestrator) Submit(ctx context.Context, input ShippingInput) (*OrderConfirmation, error) {
	if input.PaymentMethod == "" {
		input.PaymentMethod = DefaultPaymentMethod
	}

	if err := o.Validate(input); err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.state == CheckoutSubmitting {
		o.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}

	// Snapshot by value before leaving the lock: later cart mutations must
	// not reach a submission already in flight.
	snapshot := o.cart.Snapshot()
	if len(snapshot) == 0 {
		o.mu.Unlock()
		return nil, ErrCartEmpty
	}

	if err := o.transition(CheckoutSubmitting); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	o.mu.Unlock()

	req := buildOrderRequest(input, snapshot)
	reference := submissionReference(req)

	o.emitEvent(ctx, ActivityEventCheckoutSubmitted, map[string]any{
		"reference": reference,
		"lines":     len(req.Items),
	})

	order, err := o.orders.PlaceOrder(ctx, req)
	if err != nil {
		o.fail(ctx, reference, err)
		return nil, err
	}

	return o.succeed(ctx, reference, order, snapshot)
}

func (o *CheckoutOrchestrator) fail(ctx context.Context, reference string, cause error) {
	o.mu.Lock()
	if err := o.transition(CheckoutFailed); err != nil {
		o.logger.Error("checkout failed-state transition rejected", "error", err)
	}
	o.lastErr = cause
	o.mu.Unlock()

	o.logger.Warn("checkout submission failed", "reference", reference, "error", cause)
	o.emitEvent(ctx, ActivityEventCheckoutFailed, map[string]any{
		"reference": reference,
		"error":     cause.Error(),
	})
}

func (o *CheckoutOrchestrator) succeed(ctx context.Context, reference string, order *Order, snapshot []CartLine) (*OrderConfirmation, error) {
	total := order.TotalAmount
	if total == 0 {
		for _, line := range snapshot {
			total += line.LineTotal()
		}
	}

	o.mu.Lock()
	if err := o.transition(CheckoutSucceeded); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	o.lastErr = nil
	o.mu.Unlock()

	// The backend accepted the order; only now does the cart go away.
	if err := o.cart.Clear(ctx); err != nil {
		o.logger.Warn("cart clear after checkout failed", "error", err)
	}

	confirmation := &OrderConfirmation{
		OrderID:   order.ID,
		Reference: reference,
		Total:     total,
		PlacedAt:  o.now(),
	}

	o.emitEvent(ctx, ActivityEventCheckoutSucceeded, map[string]any{
		"reference": reference,
		"order_id":  order.ID,
		"total":     total,
	})

	return confirmation, nil
}

// transition must run under o.mu.
func (o *CheckoutOrchestrator) transition(target CheckoutState) error {
	allowed, ok := o.transitions[o.state]
	if !ok {
		return ErrInvalidTransition.WithMetadata(map[string]any{
			"from": o.state,
			"to":   target,
		})
	}
	if _, exists := allowed[target]; !exists {
		return ErrInvalidTransition.WithMetadata(map[string]any{
			"from": o.state,
			"to":   target,
		})
	}
	o.state = target
	return nil
}

func buildOrderRequest(input ShippingInput, snapshot []CartLine) OrderRequest {
	items := make([]OrderItemRequest, 0, len(snapshot))
	for _, line := range snapshot {
		items = append(items, OrderItemRequest{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	return OrderRequest{
		ShippingAddress: input.Address,
		PaymentMethod:   input.PaymentMethod,
		Items:           items,
	}
}

// submissionReference derives a stable reference from the request contents
// so a retry of the same cart produces the same reference.
func submissionReference(req OrderRequest) string {
	parts := make([]string, 0, len(req.Items)+2)
	parts = append(parts, req.ShippingAddress, req.PaymentMethod)
	for _, item := range req.Items {
		parts = append(parts, fmt.Sprintf("%d:%d", item.ProductID, item.Quantity))
	}

	id, err := hashid.NewUUID(strings.Join(parts, "|"))
	if err != nil {
		return ""
	}
	return id.String()
}

func (o *CheckoutOrchestrator) emitEvent(ctx context.Context, eventType ActivityEventType, metadata map[string]any) {
	sink := normalizeActivitySink(o.activitySink)
	event := ActivityEvent{
		EventType:  eventType,
		Metadata:   metadata,
		OccurredAt: o.now(),
	}
	if err := sink.Record(ctx, event); err != nil {
		o.logger.Warn("activity sink record error: %v", err)
	}
}
