package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
)

// ServiceDTO is the catalog payload returned to clients.
type ServiceDTO struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes *int            `json:"duration_minutes"`
	Category        *string         `json:"category"`
	IsActive        bool            `json:"is_active"`
}

// NewServiceDTO builds a DTO from the persisted model.
func NewServiceDTO(svc *models.Service) *ServiceDTO {
	return &ServiceDTO{
		ID:              svc.ID,
		Name:            svc.Name,
		Description:     svc.Description,
		Price:           svc.Price,
		DurationMinutes: svc.DurationMinutes,
		Category:        svc.Category,
		IsActive:        svc.IsActive,
	}
}

// NewServiceDTOs maps a list of models.
func NewServiceDTOs(rows []models.Service) []ServiceDTO {
	dtos := make([]ServiceDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewServiceDTO(&rows[i])
	}
	return dtos
}
