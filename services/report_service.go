package services

import (
	"port-registry/models"
	"port-registry/repositories"
)

type ReportService interface {
	HomeStats() (*models.HomeStats, error)
	DashboardStats(current *models.User) (*models.DashboardStats, error)
}

type reportService struct {
	shipRepo repositories.ShipRepository
}

func NewReportService(shipRepo repositories.ShipRepository) ReportService {
	return &reportService{shipRepo: shipRepo}
}

func (s *reportService) HomeStats() (*models.HomeStats, error) {
	total, err := s.shipRepo.Count()
	if err != nil {
		return nil, err
	}
	return &models.HomeStats{TotalShips: total}, nil
}

// DashboardStats aggregates the fleet for the control panel. The
// personal registration count is only computed for operator-or-admin
// identities and stays absent for guards.
func (s *reportService) DashboardStats(current *models.User) (*models.DashboardStats, error) {
	total, err := s.shipRepo.Count()
	if err != nil {
		return nil, err
	}

	byType, err := s.shipRepo.CountByType()
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		TotalShips:  total,
		ShipsByType: byType,
	}

	if current != nil && current.IsOperator() {
		mine, err := s.shipRepo.CountByRegistrar(current.ID)
		if err != nil {
			return nil, err
		}
		stats.MyRegistrations = &mine
	}

	return stats, nil
}
