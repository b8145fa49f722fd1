package repository

import (
	"context"
	"errors"

	"github.com/Nzyazin/ledger/internal/core/models"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository is append-only: rows are inserted once and read back,
// never updated or deleted.
type TransactionRepository interface {
	Save(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	ListAll(ctx context.Context) ([]models.Transaction, error)
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
}
