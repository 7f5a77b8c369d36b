package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// RouteRepository handles route database operations
type RouteRepository struct {
	db *sqlx.DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db *sqlx.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

const routeColumns = `id, origin, destination, distance, estimated_time, created_at, updated_at`

// CreateRoute inserts a new route
func (r *RouteRepository) CreateRoute(req *models.CreateRouteRequest) (*models.Route, error) {
	route := &models.Route{}
	err := r.db.Get(route, `
		INSERT INTO routes (id, origin, destination, distance, estimated_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+routeColumns,
		uuid.New().String(), req.Origin, req.Destination, req.Distance, req.EstimatedTime)
	if err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}
	return route, nil
}

// GetRouteByID retrieves a route by ID
func (r *RouteRepository) GetRouteByID(routeID string) (*models.Route, error) {
	route := &models.Route{}
	err := r.db.Get(route, `SELECT `+routeColumns+` FROM routes WHERE id = $1`, routeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return route, nil
}

// GetAllRoutes lists every route
func (r *RouteRepository) GetAllRoutes() ([]models.Route, error) {
	routes := []models.Route{}
	err := r.db.Select(&routes, `SELECT `+routeColumns+` FROM routes ORDER BY origin, destination`)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, nil
}

// UpdateRoute applies the non-nil fields of req
func (r *RouteRepository) UpdateRoute(routeID string, req *models.UpdateRouteRequest) (*models.Route, error) {
	route := &models.Route{}
	err := r.db.Get(route, `
		UPDATE routes SET
			origin         = COALESCE($2, origin),
			destination    = COALESCE($3, destination),
			distance       = COALESCE($4, distance),
			estimated_time = COALESCE($5, estimated_time),
			updated_at     = now()
		WHERE id = $1
		RETURNING `+routeColumns,
		routeID, req.Origin, req.Destination, req.Distance, req.EstimatedTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to update route: %w", err)
	}
	return route, nil
}

// DeleteRoute removes a route
func (r *RouteRepository) DeleteRoute(routeID string) (*models.Route, error) {
	route, err := r.GetRouteByID(routeID)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.Exec(`DELETE FROM routes WHERE id = $1`, routeID); err != nil {
		return nil, fmt.Errorf("failed to delete route: %w", err)
	}
	return route, nil
}
