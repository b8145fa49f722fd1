package usecase

import "errors"

const MsgNegativeAmount = "FRAUD ALERT: Cannot send negative money!"

const (
	ReasonNegativeAmount      = "negative_amount"
	ReasonUnsupportedCurrency = "unsupported_currency"
)

// ValidationError rejects caller input before any side effect happens.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNegativeAmount = &ValidationError{Reason: ReasonNegativeAmount, Message: MsgNegativeAmount}
	ErrPersistence    = errors.New("persist transaction")
)
