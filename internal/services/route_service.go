package services

import (
	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// RouteService manages the route catalogue
type RouteService struct {
	routeRepo *database.RouteRepository
	logger    *logrus.Logger
}

// NewRouteService creates a new RouteService
func NewRouteService(routeRepo *database.RouteRepository, logger *logrus.Logger) *RouteService {
	return &RouteService{
		routeRepo: routeRepo,
		logger:    logger,
	}
}

// CreateRoute registers an origin/destination pair
func (s *RouteService) CreateRoute(req *models.CreateRouteRequest) (*models.Route, error) {
	route, err := s.routeRepo.CreateRoute(req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"route_id":    route.ID,
		"origin":      route.Origin,
		"destination": route.Destination,
	}).Info("Route created")

	return route, nil
}

// GetRouteByID returns a single route
func (s *RouteService) GetRouteByID(routeID string) (*models.Route, error) {
	return s.routeRepo.GetRouteByID(routeID)
}

// GetAllRoutes returns the route catalogue
func (s *RouteService) GetAllRoutes() ([]models.Route, error) {
	return s.routeRepo.GetAllRoutes()
}

// UpdateRoute applies route changes
func (s *RouteService) UpdateRoute(routeID string, req *models.UpdateRouteRequest) (*models.Route, error) {
	return s.routeRepo.UpdateRoute(routeID, req)
}

// DeleteRoute removes a route
func (s *RouteService) DeleteRoute(routeID string) (*models.Route, error) {
	route, err := s.routeRepo.DeleteRoute(routeID)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("route_id", routeID).Info("Route deleted")
	return route, nil
}
