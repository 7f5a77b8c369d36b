package services

import (
	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ScheduleService manages scheduled trips
type ScheduleService struct {
	scheduleRepo *database.ScheduleRepository
	busRepo      *database.BusRepository
	routeRepo    *database.RouteRepository
	logger       *logrus.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	scheduleRepo *database.ScheduleRepository,
	busRepo *database.BusRepository,
	routeRepo *database.RouteRepository,
	logger *logrus.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		busRepo:      busRepo,
		routeRepo:    routeRepo,
		logger:       logger,
	}
}

// CreateSchedule registers a trip after verifying the bus and route exist
func (s *ScheduleService) CreateSchedule(req *models.CreateScheduleRequest) (*models.Schedule, error) {
	if _, err := s.busRepo.GetBusByID(req.BusID); err != nil {
		return nil, err
	}
	if _, err := s.routeRepo.GetRouteByID(req.RouteID); err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepo.CreateSchedule(req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"schedule_id": schedule.ID,
		"bus_id":      schedule.BusID,
		"route_id":    schedule.RouteID,
		"departure":   schedule.DepartureTime,
	}).Info("Schedule created")

	return schedule, nil
}

// GetScheduleByID returns a single schedule
func (s *ScheduleService) GetScheduleByID(scheduleID string) (*models.Schedule, error) {
	return s.scheduleRepo.GetScheduleByID(scheduleID)
}

// GetAllSchedules returns every scheduled trip
func (s *ScheduleService) GetAllSchedules() ([]models.Schedule, error) {
	return s.scheduleRepo.GetAllSchedules()
}

// GetSchedulesByRouteID returns the trips serving a route
func (s *ScheduleService) GetSchedulesByRouteID(routeID string) ([]models.Schedule, error) {
	if _, err := s.routeRepo.GetRouteByID(routeID); err != nil {
		return nil, err
	}
	return s.scheduleRepo.GetSchedulesByRouteID(routeID)
}

// GetSchedulesByBusID returns the trips a bus is assigned to
func (s *ScheduleService) GetSchedulesByBusID(busID string) ([]models.Schedule, error) {
	if _, err := s.busRepo.GetBusByID(busID); err != nil {
		return nil, err
	}
	return s.scheduleRepo.GetSchedulesByBusID(busID)
}

// GetSchedulesByOperatorID returns the trips across an operator's fleet
func (s *ScheduleService) GetSchedulesByOperatorID(operatorID string) ([]models.Schedule, error) {
	return s.scheduleRepo.GetSchedulesByOperatorID(operatorID)
}

// UpdateSchedule applies schedule changes
func (s *ScheduleService) UpdateSchedule(scheduleID string, req *models.UpdateScheduleRequest) (*models.Schedule, error) {
	return s.scheduleRepo.UpdateSchedule(scheduleID, req)
}

// DeleteSchedule removes a trip that has no active bookings
func (s *ScheduleService) DeleteSchedule(scheduleID string) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.DeleteSchedule(scheduleID)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("schedule_id", scheduleID).Info("Schedule deleted")
	return schedule, nil
}
