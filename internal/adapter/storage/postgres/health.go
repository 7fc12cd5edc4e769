package postgres

import (
	"context"
	"errors"
	"fmt"
)

// HealthCheck verifies the database answers and the operations table exists.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	var ok bool
	if err := h.pool.QueryRow(ctx, `SELECT to_regclass('operations') IS NOT NULL`).Scan(&ok); err != nil {
		return fmt.Errorf("postgres health query: %w", err)
	}
	if !ok {
		return errors.New("operations table missing; migrations not applied")
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "operation-journal"
}
