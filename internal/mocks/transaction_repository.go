package mocks

import (
	"context"

	"github.com/Nzyazin/ledger/internal/core/models"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (_m *TransactionRepository) Save(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	ret := _m.Called(ctx, txn)
	var saved *models.Transaction
	if fn, ok := ret.Get(0).(func(*models.Transaction) *models.Transaction); ok {
		saved = fn(txn)
	} else if ret.Get(0) != nil {
		saved = ret.Get(0).(*models.Transaction)
	}
	return saved, ret.Error(1)
}

func (_m *TransactionRepository) ListAll(ctx context.Context) ([]models.Transaction, error) {
	ret := _m.Called(ctx)
	var list []models.Transaction
	if ret.Get(0) != nil {
		list = ret.Get(0).([]models.Transaction)
	}
	return list, ret.Error(1)
}

func (_m *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	ret := _m.Called(ctx, id)
	var txn *models.Transaction
	if ret.Get(0) != nil {
		txn = ret.Get(0).(*models.Transaction)
	}
	return txn, ret.Error(1)
}
