package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentStatus tracks the payment side of an order, orthogonal to the
// delivery lifecycle. The payment gateway is an external collaborator; this
// core only records the outcome it reports.
type PaymentStatus string

const (
	// PaymentPending means no successful charge has been reported yet.
	PaymentPending PaymentStatus = "pending"

	// PaymentPaid means the gateway reported a successful charge that is not
	// yet reconciled.
	PaymentPaid PaymentStatus = "paid"

	// PaymentConfirmed means the charge is reconciled; the order may move to
	// the confirmed lifecycle state.
	PaymentConfirmed PaymentStatus = "confirmed"
)

// Validate checks if the PaymentStatus is one of the known values.
func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentPending, PaymentPaid, PaymentConfirmed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus",
			fmt.Errorf("%q is not a valid payment status", string(p)),
		)
	}
}

func (p PaymentStatus) String() string {
	return string(p)
}
