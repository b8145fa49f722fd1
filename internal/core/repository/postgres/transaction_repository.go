package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nzyazin/ledger/internal/core/logger"
	"github.com/Nzyazin/ledger/internal/core/models"
	"github.com/Nzyazin/ledger/internal/core/repository"
	"github.com/jmoiron/sqlx"
)

const transactionColumns = `id, reference, amount, sender_account, receiver_account, currency, status, processed_at, category`

type postgresTransactionRepo struct {
	db  *sqlx.DB
	log logger.Logger
}

func NewPostgresTransactionRepo(db *sqlx.DB, log logger.Logger) repository.TransactionRepository {
	return &postgresTransactionRepo{
		db:  db,
		log: log,
	}
}

// Save inserts txn and returns a copy carrying the generated id.
func (r *postgresTransactionRepo) Save(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	const query = `INSERT INTO transactions
        (reference, amount, sender_account, receiver_account, currency, status, processed_at, category)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`

	var id int64
	err := r.db.GetContext(ctx, &id, query,
		txn.Reference,
		txn.Amount,
		txn.SenderAccount,
		txn.ReceiverAccount,
		txn.Currency,
		txn.Status,
		txn.Timestamp,
		txn.Category,
	)
	if err != nil {
		r.log.Error("Error inserting transaction",
			logger.StringField("reference", txn.Reference),
			logger.ErrorField("error", err))
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	saved := *txn
	saved.ID = id
	return &saved, nil
}

func (r *postgresTransactionRepo) ListAll(ctx context.Context) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY processed_at DESC, id DESC`

	transactions := []models.Transaction{}
	if err := r.db.SelectContext(ctx, &transactions, query); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

func (r *postgresTransactionRepo) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", repository.ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &txn, nil
}
