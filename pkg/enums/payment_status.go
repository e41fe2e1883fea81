package enums

// CheckoutPaymentStatus mirrors the payment_status reported on a hosted
// checkout session.
type CheckoutPaymentStatus string

const (
	CheckoutPaymentStatusPaid              CheckoutPaymentStatus = "paid"
	CheckoutPaymentStatusUnpaid            CheckoutPaymentStatus = "unpaid"
	CheckoutPaymentStatusNoPaymentRequired CheckoutPaymentStatus = "no_payment_required"
)

// String implements fmt.Stringer.
func (p CheckoutPaymentStatus) String() string {
	return string(p)
}

// IsPaid reports whether funds were captured for the session.
func (p CheckoutPaymentStatus) IsPaid() bool {
	return p == CheckoutPaymentStatusPaid
}
