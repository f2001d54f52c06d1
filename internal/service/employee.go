package service

import (
	"context"
	"fmt"

	"github.com/xolan/wfdash/internal/api"
)

// EmployeeService looks up who the dashboard belongs to
type EmployeeService struct {
	api API
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(backend API) *EmployeeService {
	return &EmployeeService{api: backend}
}

// Info returns the tracked employee's identity.
func (s *EmployeeService) Info(ctx context.Context) (*api.EmployeeInfo, error) {
	info, err := s.api.EmployeeInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee info: %w", err)
	}
	return info, nil
}
