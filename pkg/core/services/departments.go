package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation/roster"
	"github.com/jakechorley/leave-roster/pkg/db"
	"github.com/jakechorley/leave-roster/pkg/utils/textnorm"
)

// CreateDepartment stores a new active department unless an active one with a similar name exists
func (s *Service) CreateDepartment(ctx context.Context, name string) (*model.Department, error) {
	department := &model.Department{
		Name:           strings.TrimSpace(name),
		NormalizedName: textnorm.Normalize(name),
		Active:         true,
	}

	err := s.store.RunInTx(ctx, func(tx db.Database) error {
		result, err := roster.NewDepartmentChain(tx, s.logger).Validate(ctx, department)
		if err != nil {
			return err
		}
		if !result.Valid {
			return rejection(result)
		}
		if err := tx.InsertDepartment(ctx, department); err != nil {
			return fmt.Errorf("failed to insert department: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Department created", zap.Int64("id", department.ID), zap.String("name", department.Name))
	return department, nil
}

// CreateEmployee stores a new active employee unless a similarly named one already works the
// same department and shift
func (s *Service) CreateEmployee(ctx context.Context, employee *model.Employee) (*model.Employee, error) {
	employee.ID = 0
	employee.Name = strings.TrimSpace(employee.Name)
	employee.NormalizedName = textnorm.Normalize(employee.Name)
	employee.Active = true

	err := s.store.RunInTx(ctx, func(tx db.Database) error {
		result, err := roster.NewEmployeeChain(tx, s.logger).Validate(ctx, employee)
		if err != nil {
			return err
		}
		if !result.Valid {
			return rejection(result)
		}
		if err := tx.InsertEmployee(ctx, employee); err != nil {
			return fmt.Errorf("failed to insert employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Employee created",
		zap.Int64("id", employee.ID),
		zap.String("name", employee.Name),
		zap.String("shift", string(employee.Shift)))
	return employee, nil
}
