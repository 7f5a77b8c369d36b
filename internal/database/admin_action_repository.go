package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// AdminActionRepository handles the append-only admin audit log
type AdminActionRepository struct {
	db *sqlx.DB
}

// NewAdminActionRepository creates a new AdminActionRepository
func NewAdminActionRepository(db *sqlx.DB) *AdminActionRepository {
	return &AdminActionRepository{db: db}
}

// RecordAction appends an audit row for an administrative mutation
func (r *AdminActionRepository) RecordAction(adminID, actionType, details string) error {
	_, err := r.db.Exec(`
		INSERT INTO admin_actions (id, admin_id, action_type, details)
		VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), adminID, actionType, details)
	if err != nil {
		return fmt.Errorf("failed to record admin action: %w", err)
	}
	return nil
}

// GetActionsByAdminID lists an admin's audit trail, newest first
func (r *AdminActionRepository) GetActionsByAdminID(adminID string, limit int) ([]models.AdminAction, error) {
	actions := []models.AdminAction{}
	err := r.db.Select(&actions, `
		SELECT id, admin_id, action_type, details, action_timestamp
		FROM admin_actions WHERE admin_id = $1
		ORDER BY action_timestamp DESC
		LIMIT $2`, adminID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin actions: %w", err)
	}
	return actions, nil
}
