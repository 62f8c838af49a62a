package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to check out")
	ErrIllegalTransition = errors.New("illegal checkout state transition")

	// ErrConfirmFailed is retryable: the session stays in the payment step
	// and the cart is untouched.
	ErrConfirmFailed = errors.New("failed to process the order, please try again")
)

// ValidationError reports checkout form fields that were left empty.
// Validation is presence-only; field formats are taken as given.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}
