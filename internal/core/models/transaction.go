package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending       = "PENDING"
	StatusSuccessPrefix = "SUCCESS - Sent to "
)

// Transaction is a single ledger entry. The store assigns ID on insert;
// nothing updates or deletes a row after that.
type Transaction struct {
	ID              int64           `json:"id" db:"id"`
	Reference       string          `json:"reference" db:"reference"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	SenderAccount   string          `json:"senderAccount" db:"sender_account"`
	ReceiverAccount string          `json:"receiverAccount" db:"receiver_account"`
	Currency        string          `json:"currency" db:"currency"`
	Status          string          `json:"status" db:"status"`
	Timestamp       time.Time       `json:"timestamp" db:"processed_at"`
	Category        string          `json:"category" db:"category"`
}

// TransactionRequest is the inbound payload of a submit call. Amount accepts
// both a JSON string and a JSON number and is parsed exactly.
type TransactionRequest struct {
	Reference     string              `json:"reference"`
	Amount        decimal.NullDecimal `json:"amount"`
	SenderAccount string              `json:"senderAccount"`
	Currency      string              `json:"currency"`
}

func (r TransactionRequest) ToTransaction() *Transaction {
	return &Transaction{
		Reference:     r.Reference,
		Amount:        r.Amount.Decimal,
		SenderAccount: r.SenderAccount,
		Currency:      r.Currency,
		Status:        StatusPending,
	}
}
