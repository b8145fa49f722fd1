package mocks

import (
	"context"

	"github.com/Nzyazin/ledger/internal/core/classifier"
	"github.com/stretchr/testify/mock"
)

type Classifier struct {
	mock.Mock
}

func (_m *Classifier) Classify(ctx context.Context, reference, amount string) classifier.Classification {
	ret := _m.Called(ctx, reference, amount)
	return ret.Get(0).(classifier.Classification)
}
