package services

import (
	"fmt"

	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// AdminService covers the admin surface: role assignment and reporting, with
// an audit row per mutation.
type AdminService struct {
	userRepo   *database.UserRepository
	reportRepo *database.ReportRepository
	actionRepo *database.AdminActionRepository
	logger     *logrus.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo *database.UserRepository,
	reportRepo *database.ReportRepository,
	actionRepo *database.AdminActionRepository,
	logger *logrus.Logger,
) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		reportRepo: reportRepo,
		actionRepo: actionRepo,
		logger:     logger,
	}
}

// AssignRole changes a user's role and records the action
func (s *AdminService) AssignRole(adminID string, req *models.AssignRoleRequest) error {
	if !models.ValidRole(req.Role) {
		return models.ErrInvalidRole
	}
	if err := s.userRepo.AssignRole(req.UserID, req.Role); err != nil {
		return err
	}

	details := fmt.Sprintf("assigned role %s to user %s", req.Role, req.UserID)
	if err := s.actionRepo.RecordAction(adminID, "assign_role", details); err != nil {
		// The role change itself succeeded; a failed audit write is logged,
		// not surfaced.
		s.logger.WithError(err).Error("Failed to record admin action")
	}

	s.logger.WithFields(logrus.Fields{
		"admin_id": adminID,
		"user_id":  req.UserID,
		"role":     req.Role,
	}).Info("Role assigned")
	return nil
}

// GenerateReport aggregates non-cancelled bookings for the dashboard
func (s *AdminService) GenerateReport(adminID string, req *models.GenerateReportsRequest) (*models.Report, error) {
	report, err := s.reportRepo.GenerateReport(req)
	if err != nil {
		return nil, err
	}

	if err := s.actionRepo.RecordAction(adminID, "generate_report",
		fmt.Sprintf("route=%q operator=%q bookings=%d", req.Route, req.Operator, report.TotalBookings)); err != nil {
		s.logger.WithError(err).Error("Failed to record admin action")
	}
	return report, nil
}

// GetAuditTrail lists an admin's recorded actions
func (s *AdminService) GetAuditTrail(adminID string, limit int) ([]models.AdminAction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.actionRepo.GetActionsByAdminID(adminID, limit)
}
