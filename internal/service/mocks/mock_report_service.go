package mocks

import (
	"context"

	"crmapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Export(ctx context.Context, q service.ExportQuery) (*service.ExportFile, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockReportService) Publish(ctx context.Context, q service.ExportQuery) (*service.ExportLink, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportLink), args.Error(1)
}
