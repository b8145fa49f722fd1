package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Nzyazin/ledger/internal/core/cache"
	"github.com/Nzyazin/ledger/internal/core/classifier"
	"github.com/Nzyazin/ledger/internal/core/logger"
	"github.com/Nzyazin/ledger/internal/core/metrics"
	"github.com/Nzyazin/ledger/internal/core/models"
	"github.com/Nzyazin/ledger/internal/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 2, 8, 14, 30, 0, 0, time.UTC)

type fixture struct {
	uc          *transactionUsecase
	repo        *mocks.TransactionRepository
	categorizer *mocks.Categorizer
	metrics     *metrics.Metrics
}

func newFixture(currency CurrencyConfig) fixture {
	repo := &mocks.TransactionRepository{}
	categorizer := &mocks.Categorizer{}
	m := metrics.NewMetrics(prometheus.NewRegistry())

	uc := NewTransactionUsecase(repo, categorizer, currency, logger.NewNopLogger(), m).(*transactionUsecase)
	uc.now = func() time.Time { return fixedNow }

	return fixture{uc: uc, repo: repo, categorizer: categorizer, metrics: m}
}

// assignID mimics the store handing back a copy with a generated id.
func assignID(id int64) func(*models.Transaction) *models.Transaction {
	return func(txn *models.Transaction) *models.Transaction {
		saved := *txn
		saved.ID = id
		return &saved
	}
}

func newTxn(reference, amount, sender string) *models.Transaction {
	return &models.Transaction{
		Reference:     reference,
		Amount:        decimal.RequireFromString(amount),
		SenderAccount: sender,
		Status:        models.StatusPending,
	}
}

func TestProcessTransaction_InvestecEndToEnd(t *testing.T) {
	f := newFixture(CurrencyConfig{})
	ctx := context.Background()

	f.categorizer.On("Categorize", ctx, "Uber * 8721", decimal.RequireFromString("45.00")).Return("Transport").Once()
	f.repo.On("Save", ctx, mock.AnythingOfType("*models.Transaction")).Return(assignID(1), nil).Once()

	result, err := f.uc.ProcessTransaction(ctx, newTxn("Uber * 8721", "45.00", "INV-999"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "INV-POOL-888", result.ReceiverAccount)
	assert.Equal(t, "SUCCESS - Sent to INVESTEC BANK", result.Status)
	assert.Equal(t, "Transport", result.Category)
	assert.Equal(t, "ZAR", result.Currency)
	assert.Equal(t, fixedNow, result.Timestamp)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TransactionsProcessed.WithLabelValues("INVESTEC BANK")))
	f.repo.AssertExpectations(t)
	f.categorizer.AssertExpectations(t)
}

func TestProcessTransaction_Routing(t *testing.T) {
	tests := []struct {
		sender   string
		receiver string
		status   string
	}{
		{"ABS-123", "ABS-MERCHANT-001", "SUCCESS - Sent to ABSA BANK"},
		{"FNB-77", "SB-CLEARING-999", "SUCCESS - Sent to STANDARD BANK"},
		{"", "SB-CLEARING-999", "SUCCESS - Sent to STANDARD BANK"},
	}

	for _, tt := range tests {
		t.Run(tt.status+"/"+tt.sender, func(t *testing.T) {
			f := newFixture(CurrencyConfig{})
			f.categorizer.On("Categorize", mock.Anything, mock.Anything, mock.Anything).Return("Shopping")
			f.repo.On("Save", mock.Anything, mock.Anything).Return(assignID(5), nil)

			txn := newTxn("Takealot", "50.00", tt.sender)
			txn.ReceiverAccount = "CALLER-SUPPLIED"

			result, err := f.uc.ProcessTransaction(context.Background(), txn)

			require.NoError(t, err)
			assert.Equal(t, tt.receiver, result.ReceiverAccount)
			assert.Equal(t, tt.status, result.Status)
		})
	}
}

func TestProcessTransaction_NegativeAmount(t *testing.T) {
	f := newFixture(CurrencyConfig{})

	result, err := f.uc.ProcessTransaction(context.Background(), newTxn("x", "-1.00", "ABS-1"))

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, "FRAUD ALERT: Cannot send negative money!", err.Error())

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TransactionsRejected.WithLabelValues(ReasonNegativeAmount)))
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.categorizer.AssertNotCalled(t, "Categorize", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessTransaction_RejectionLeavesInputUntouched(t *testing.T) {
	f := newFixture(CurrencyConfig{})
	txn := newTxn("x", "-500.00", "INV-001")

	_, err := f.uc.ProcessTransaction(context.Background(), txn)

	require.ErrorIs(t, err, ErrNegativeAmount)
	assert.Empty(t, txn.ReceiverAccount)
	assert.Empty(t, txn.Currency)
	assert.Equal(t, models.StatusPending, txn.Status)
	assert.True(t, txn.Timestamp.IsZero())
}

func TestProcessTransaction_ZeroAmountIsAccepted(t *testing.T) {
	f := newFixture(CurrencyConfig{})
	f.categorizer.On("Categorize", mock.Anything, "Balance check", mock.Anything).Return("Transfer")
	f.repo.On("Save", mock.Anything, mock.Anything).Return(assignID(9), nil)

	result, err := f.uc.ProcessTransaction(context.Background(), newTxn("Balance check", "0", "INV-1"))

	require.NoError(t, err)
	assert.Equal(t, int64(9), result.ID)
}

func TestProcessTransaction_DegradedCategoryIsPersisted(t *testing.T) {
	f := newFixture(CurrencyConfig{})
	f.categorizer.On("Categorize", mock.Anything, mock.Anything, mock.Anything).Return(classifier.CategoryAIError)
	f.repo.On("Save", mock.Anything, mock.MatchedBy(func(txn *models.Transaction) bool {
		return txn.Category == classifier.CategoryAIError
	})).Return(assignID(3), nil).Once()

	result, err := f.uc.ProcessTransaction(context.Background(), newTxn("KFC", "120.00", "SB-1"))

	require.NoError(t, err)
	assert.Equal(t, classifier.CategoryAIError, result.Category)
	assert.Equal(t, "SUCCESS - Sent to STANDARD BANK", result.Status)
	f.repo.AssertExpectations(t)
}

func TestProcessTransaction_ClassifierOutageWithRealClient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	log := logger.NewNopLogger()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	client := classifier.NewClient(classifier.Config{URL: srv.URL + "/?key=", APIKey: "k", Timeout: time.Second}, nil, log, m)
	categorizer := cache.NewCachedClassifier(cache.NewCategoryCache(cache.NewMemoryStore(), log, m), client)

	repo := &mocks.TransactionRepository{}
	repo.On("Save", mock.Anything, mock.MatchedBy(func(txn *models.Transaction) bool {
		return txn.Category == classifier.CategoryAIError
	})).Return(assignID(5), nil).Twice()

	uc := NewTransactionUsecase(repo, categorizer, CurrencyConfig{}, log, m)

	for i := 0; i < 2; i++ {
		result, err := uc.ProcessTransaction(context.Background(), newTxn("KFC", "120.00", "SB-1"))
		require.NoError(t, err)
		assert.Equal(t, classifier.CategoryAIError, result.Category)
		assert.Equal(t, "SUCCESS - Sent to STANDARD BANK", result.Status)
	}

	assert.Equal(t, int32(1), calls.Load())
	repo.AssertExpectations(t)
}

func TestProcessTransaction_PersistenceFailure(t *testing.T) {
	f := newFixture(CurrencyConfig{})
	dbErr := errors.New("connection refused")
	f.categorizer.On("Categorize", mock.Anything, mock.Anything, mock.Anything).Return("Transport")
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil, dbErr)

	result, err := f.uc.ProcessTransaction(context.Background(), newTxn("Uber", "45.00", "INV-1"))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PersistenceErrors))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.TransactionsProcessed.WithLabelValues("INVESTEC BANK")))
}

func TestProcessTransaction_CurrencyPolicy(t *testing.T) {
	tests := []struct {
		name     string
		policy   models.CurrencyPolicy
		currency string
		want     string
		wantErr  bool
	}{
		{"default fills empty", models.CurrencyPolicyDefault, "", "ZAR", false},
		{"default keeps given", models.CurrencyPolicyDefault, "usd", "USD", false},
		{"override replaces given", models.CurrencyPolicyOverride, "USD", "ZAR", false},
		{"enforce fills empty", models.CurrencyPolicyEnforce, "", "ZAR", false},
		{"enforce accepts default", models.CurrencyPolicyEnforce, "zar", "ZAR", false},
		{"enforce rejects other", models.CurrencyPolicyEnforce, "EUR", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(CurrencyConfig{Default: "ZAR", Policy: tt.policy})
			f.categorizer.On("Categorize", mock.Anything, mock.Anything, mock.Anything).Return("Tech")
			f.repo.On("Save", mock.Anything, mock.Anything).Return(assignID(1), nil)

			txn := newTxn("Apple", "999.99", "ABS-7")
			txn.Currency = tt.currency

			result, err := f.uc.ProcessTransaction(context.Background(), txn)

			if tt.wantErr {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, ReasonUnsupportedCurrency, verr.Reason)
				f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Currency)
		})
	}
}

func TestListTransactions(t *testing.T) {
	f := newFixture(CurrencyConfig{})
	stored := []models.Transaction{{ID: 2}, {ID: 1}}
	f.repo.On("ListAll", mock.Anything).Return(stored, nil).Once()

	list, err := f.uc.ListTransactions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stored, list)

	f.repo.On("ListAll", mock.Anything).Return(nil, errors.New("timeout")).Once()
	_, err = f.uc.ListTransactions(context.Background())
	assert.ErrorContains(t, err, "timeout")
}
