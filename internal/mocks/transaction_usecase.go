package mocks

import (
	"context"

	"github.com/Nzyazin/ledger/internal/core/models"
	"github.com/stretchr/testify/mock"
)

type TransactionUsecase struct {
	mock.Mock
}

func (_m *TransactionUsecase) ProcessTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	ret := _m.Called(ctx, txn)
	var out *models.Transaction
	if ret.Get(0) != nil {
		out = ret.Get(0).(*models.Transaction)
	}
	return out, ret.Error(1)
}

func (_m *TransactionUsecase) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	ret := _m.Called(ctx)
	var list []models.Transaction
	if ret.Get(0) != nil {
		list = ret.Get(0).([]models.Transaction)
	}
	return list, ret.Error(1)
}

func (_m *TransactionUsecase) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	ret := _m.Called(ctx, id)
	var txn *models.Transaction
	if ret.Get(0) != nil {
		txn = ret.Get(0).(*models.Transaction)
	}
	return txn, ret.Error(1)
}
