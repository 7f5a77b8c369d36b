package services

import (
	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// BusService manages the bus fleet and its seat sets
type BusService struct {
	busRepo  *database.BusRepository
	userRepo *database.UserRepository
	logger   *logrus.Logger
}

// NewBusService creates a new BusService
func NewBusService(busRepo *database.BusRepository, userRepo *database.UserRepository, logger *logrus.Logger) *BusService {
	return &BusService{
		busRepo:  busRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateBus registers a bus and its numbered seats. The operator must exist
// and the bus number must be unused.
func (s *BusService) CreateBus(req *models.CreateBusRequest) (*models.Bus, error) {
	if _, err := s.userRepo.GetUserByID(req.OperatorID); err != nil {
		return nil, err
	}
	unique, err := s.busRepo.IsBusNumberUnique(req.BusNumber)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, models.ErrBusNumberInUse
	}

	bus, err := s.busRepo.CreateBus(req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"bus_id":      bus.ID,
		"bus_number":  bus.BusNumber,
		"total_seats": bus.TotalSeats,
	}).Info("Bus registered")

	return bus, nil
}

// GetBusByID returns a single bus
func (s *BusService) GetBusByID(busID string) (*models.Bus, error) {
	return s.busRepo.GetBusByID(busID)
}

// GetAllBuses returns the whole fleet
func (s *BusService) GetAllBuses() ([]models.Bus, error) {
	return s.busRepo.GetAllBuses()
}

// GetBusesByOperatorID returns an operator's buses
func (s *BusService) GetBusesByOperatorID(operatorID string) ([]models.Bus, error) {
	return s.busRepo.GetBusesByOperatorID(operatorID)
}

// UpdateBus applies bus changes, growing or shrinking the seat set when the
// seat count changes
func (s *BusService) UpdateBus(busID string, req *models.UpdateBusRequest) (*models.Bus, error) {
	bus, err := s.busRepo.UpdateBus(busID, req)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("bus_id", busID).Info("Bus updated")
	return bus, nil
}

// DeleteBus removes a bus that has no active bookings
func (s *BusService) DeleteBus(busID string) (*models.Bus, error) {
	bus, err := s.busRepo.DeleteBus(busID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"bus_id":     busID,
		"bus_number": bus.BusNumber,
	}).Info("Bus deleted")

	return bus, nil
}

// GetSeatsByBusID returns the physical seats of a bus
func (s *BusService) GetSeatsByBusID(busID string) ([]models.Seat, error) {
	if _, err := s.busRepo.GetBusByID(busID); err != nil {
		return nil, err
	}
	return s.busRepo.GetSeatsByBusID(busID)
}
