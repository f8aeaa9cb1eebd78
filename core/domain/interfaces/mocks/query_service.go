package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hyperterse/dataexplorer/core/domain"
)

// MockQueryService is a testify mock of interfaces.QueryService
type MockQueryService struct {
	mock.Mock
}

// NewMockQueryService creates a mock whose expectations are asserted when the
// test ends
func NewMockQueryService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQueryService {
	m := &MockQueryService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Run records the call and returns the configured values
func (m *MockQueryService) Run(ctx context.Context, req domain.RunRequest) (*domain.Report, error) {
	args := m.Called(ctx, req)

	var report *domain.Report
	if r := args.Get(0); r != nil {
		report = r.(*domain.Report)
	}
	return report, args.Error(1)
}

// RunAll records the call and returns the configured values
func (m *MockQueryService) RunAll(ctx context.Context, reqs []domain.RunRequest, concurrency int) ([]*domain.Report, error) {
	args := m.Called(ctx, reqs, concurrency)

	var reports []*domain.Report
	if r := args.Get(0); r != nil {
		reports = r.([]*domain.Report)
	}
	return reports, args.Error(1)
}
