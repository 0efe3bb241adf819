package storefront

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials = "invalid_credentials"
	TextCodeNotAuthenticated   = "not_authenticated"
	TextCodeTokenMalformed     = "token_malformed"
	TextCodeCartEmpty          = "cart_empty"
	TextCodeCheckoutInFlight   = "checkout_in_flight"
	TextCodeInvalidTransition  = "invalid_checkout_transition"
	TextCodeStockConflict      = "stock_conflict"
	TextCodeBackendUnreachable = "backend_unreachable"
	TextCodeInvalidQuantity    = "invalid_quantity"
)

// ErrInvalidCredentials is returned when the auth endpoint rejects a login.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrNotAuthenticated is returned when an operation requires a session.
var ErrNotAuthenticated = errors.New("not authenticated", errors.CategoryAuth).
	WithTextCode(TextCodeNotAuthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a stored token cannot be decoded.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrCartEmpty is returned when checkout is attempted on an empty cart.
var ErrCartEmpty = errors.New("cart is empty", errors.CategoryValidation).
	WithTextCode(TextCodeCartEmpty).
	WithCode(errors.CodeBadRequest)

// ErrCheckoutInFlight is returned when Submit is called while a previous
// submission is still pending.
var ErrCheckoutInFlight = errors.New("checkout already submitting", errors.CategoryConflict).
	WithTextCode(TextCodeCheckoutInFlight).
	WithCode(errors.CodeConflict)

// ErrInvalidTransition is returned for a checkout state change that is not
// in the transition table.
var ErrInvalidTransition = errors.New("invalid checkout state transition", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidTransition).
	WithCode(errors.CodeBadRequest)

// ErrStockConflict is returned when the backend rejects an order for
// insufficient stock.
var ErrStockConflict = errors.New("insufficient stock for order", errors.CategoryConflict).
	WithTextCode(TextCodeStockConflict).
	WithCode(errors.CodeConflict)

// ErrBackendUnreachable is returned when the backend cannot be reached.
var ErrBackendUnreachable = errors.New("backend unreachable", errors.CategoryExternal).
	WithTextCode(TextCodeBackendUnreachable).
	WithCode(errors.CodeInternal)

// ErrInvalidQuantity is returned when a cart mutation receives a
// non-positive quantity argument.
var ErrInvalidQuantity = errors.New("quantity must be positive", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidQuantity).
	WithCode(errors.CodeBadRequest)

// IsAuthError reports whether err belongs to the auth taxonomy.
func IsAuthError(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == errors.CategoryAuth
}

// IsConflictError reports whether err is a stock/SKU conflict surfaced at
// checkout. Conflicts are retryable once the cart is adjusted.
func IsConflictError(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == errors.CategoryConflict
}

// IsNetworkError reports whether err was caused by an unreachable backend.
func IsNetworkError(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == errors.CategoryExternal
}

// IsValidationError reports whether err is bad local input that was never
// sent to the server.
func IsValidationError(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == errors.CategoryValidation
}

func asRichError(err error) (*errors.Error, bool) {
	if err == nil {
		return nil, false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr, true
	}
	return nil, false
}

// IsTokenMalformedError will check for error message
func IsTokenMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "token contains an invalid number of segments")
}
