package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hyperterse/dataexplorer/core/domain"
)

// MockQueryExecutor is a testify mock of interfaces.QueryExecutor
type MockQueryExecutor struct {
	mock.Mock
}

// NewMockQueryExecutor creates a mock whose expectations are asserted when
// the test ends
func NewMockQueryExecutor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQueryExecutor {
	m := &MockQueryExecutor{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ExecuteQuery records the call and returns the configured values
func (m *MockQueryExecutor) ExecuteQuery(ctx context.Context, req *domain.QueryRequest) (*domain.QueryResult, error) {
	args := m.Called(ctx, req)

	var result *domain.QueryResult
	if fn, ok := args.Get(0).(func(context.Context, *domain.QueryRequest) (*domain.QueryResult, error)); ok {
		return fn(ctx, req)
	}
	if r := args.Get(0); r != nil {
		result = r.(*domain.QueryResult)
	}
	return result, args.Error(1)
}
