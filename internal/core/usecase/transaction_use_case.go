package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nzyazin/ledger/internal/core/logger"
	"github.com/Nzyazin/ledger/internal/core/metrics"
	"github.com/Nzyazin/ledger/internal/core/models"
	"github.com/Nzyazin/ledger/internal/core/repository"
	"github.com/Nzyazin/ledger/internal/core/routing"
	"github.com/shopspring/decimal"
)

type TransactionUsecase interface {
	ProcessTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)
}

// Categorizer never fails: classifier trouble comes back as a sentinel
// category.
type Categorizer interface {
	Categorize(ctx context.Context, reference string, amount decimal.Decimal) string
}

type CurrencyConfig struct {
	Default string
	Policy  models.CurrencyPolicy
}

type transactionUsecase struct {
	repo        repository.TransactionRepository
	categorizer Categorizer
	currency    CurrencyConfig
	log         logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewTransactionUsecase(
	repo repository.TransactionRepository,
	categorizer Categorizer,
	currency CurrencyConfig,
	log logger.Logger,
	m *metrics.Metrics,
) TransactionUsecase {
	if currency.Default == "" {
		currency.Default = models.DefaultCurrencyCode
	}
	if currency.Policy == "" {
		currency.Policy = models.CurrencyPolicyDefault
	}
	return &transactionUsecase{
		repo:        repo,
		categorizer: categorizer,
		currency:    currency,
		log:         log,
		metrics:     m,
		now:         time.Now,
	}
}

// ProcessTransaction validates, routes, categorizes and persists txn, in that
// order. Validation is the only rejection point before the insert.
func (uc *transactionUsecase) ProcessTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	uc.logStart(txn)

	if err := uc.validate(txn); err != nil {
		return nil, err
	}

	route := routing.Resolve(txn.SenderAccount)
	txn.ReceiverAccount = route.PoolAccount

	txn.Category = uc.categorizer.Categorize(ctx, txn.Reference, txn.Amount)

	txn.Status = models.StatusSuccessPrefix + route.Rail
	txn.Timestamp = uc.now()

	saved, err := uc.repo.Save(ctx, txn)
	if err != nil {
		uc.metrics.PersistenceErrors.Inc()
		uc.log.Error("Transaction persistence failed",
			logger.StringField("reference", txn.Reference),
			logger.StringField("rail", route.Rail),
			logger.ErrorField("error", err))
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	uc.metrics.TransactionsProcessed.WithLabelValues(route.Rail).Inc()
	uc.log.Info("Transaction processed",
		logger.Int64Field("id", saved.ID),
		logger.StringField("rail", route.Rail),
		logger.StringField("receiver_account", saved.ReceiverAccount),
		logger.StringField("category", saved.Category))

	return saved, nil
}

func (uc *transactionUsecase) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := uc.repo.ListAll(ctx)
	if err != nil {
		uc.log.Error("Transaction listing failed", logger.ErrorField("error", err))
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

func (uc *transactionUsecase) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	txn, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return txn, nil
}

func (uc *transactionUsecase) logStart(txn *models.Transaction) {
	uc.log.Info("Starting transaction",
		logger.StringField("reference", txn.Reference),
		logger.StringField("sender_account", txn.SenderAccount),
		logger.StringField("amount", txn.Amount.String()))
}

func (uc *transactionUsecase) validate(txn *models.Transaction) error {
	if txn.Amount.IsNegative() {
		uc.reject(txn, ErrNegativeAmount)
		return ErrNegativeAmount
	}

	if verr := uc.normalizeCurrency(txn); verr != nil {
		uc.reject(txn, verr)
		return verr
	}
	return nil
}

func (uc *transactionUsecase) normalizeCurrency(txn *models.Transaction) *ValidationError {
	code := strings.ToUpper(strings.TrimSpace(txn.Currency))

	switch uc.currency.Policy {
	case models.CurrencyPolicyOverride:
		code = uc.currency.Default
	case models.CurrencyPolicyEnforce:
		if code != "" && code != uc.currency.Default {
			return &ValidationError{
				Reason:  ReasonUnsupportedCurrency,
				Message: fmt.Sprintf("unsupported currency %s: only %s is accepted", code, uc.currency.Default),
			}
		}
	}

	if code == "" {
		code = uc.currency.Default
	}
	txn.Currency = code
	return nil
}

func (uc *transactionUsecase) reject(txn *models.Transaction, err *ValidationError) {
	uc.metrics.TransactionsRejected.WithLabelValues(err.Reason).Inc()
	uc.log.Warn("Transaction rejected",
		logger.StringField("reason", err.Reason),
		logger.StringField("sender_account", txn.SenderAccount),
		logger.StringField("amount", txn.Amount.String()))
}
