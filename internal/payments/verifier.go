package payments

import (
	"context"
	"strings"

	"github.com/angelmondragon/leadintake/pkg/enums"
	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
	"github.com/angelmondragon/leadintake/pkg/logger"
)

// MinSessionIDLength is the shortest session id worth sending upstream.
const MinSessionIDLength = 10

// PaymentRecord is the verified view of a paid checkout session.
type PaymentRecord struct {
	SessionID     string
	PaymentStatus enums.CheckoutPaymentStatus
	CustomerEmail string
	AmountTotal   int64
	Currency      string
}

// Verifier confirms checkout sessions with the payment provider.
type Verifier struct {
	api  SessionAPI
	logg *logger.Logger
}

func NewVerifier(api SessionAPI, logg *logger.Logger) *Verifier {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Verifier{api: api, logg: logg}
}

// VerifyPaid looks up sessionID and succeeds only when the provider reports it
// paid. Lookup failures of any kind surface as an invalid session.
func (v *Verifier) VerifyPaid(ctx context.Context, sessionID string) (*PaymentRecord, error) {
	if v == nil || v.api == nil || !v.api.Configured() {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "stripe is not configured")
	}

	sessionID = strings.TrimSpace(sessionID)
	if len(sessionID) < MinSessionIDLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing or invalid session_id").
			WithDetails(map[string]any{"field": "session_id"})
	}

	sess, err := v.api.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		v.logg.Warn(v.logg.WithField(ctx, "error", err.Error()), "checkout session lookup failed")
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session")
	}
	if sess == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid session")
	}

	status := enums.CheckoutPaymentStatus(sess.PaymentStatus)
	if !status.IsPaid() {
		return nil, pkgerrors.New(pkgerrors.CodePaymentRequired, "payment not completed").
			WithDetails(map[string]any{"payment_status": status.String()})
	}

	record := &PaymentRecord{
		SessionID:     sessionID,
		PaymentStatus: status,
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
	}
	if sess.ID != "" {
		record.SessionID = sess.ID
	}
	if sess.CustomerDetails != nil {
		record.CustomerEmail = sess.CustomerDetails.Email
	}
	return record, nil
}
