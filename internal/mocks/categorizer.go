package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type Categorizer struct {
	mock.Mock
}

func (_m *Categorizer) Categorize(ctx context.Context, reference string, amount decimal.Decimal) string {
	ret := _m.Called(ctx, reference, amount)
	return ret.String(0)
}
