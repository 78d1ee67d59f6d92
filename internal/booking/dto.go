package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
)

const datetimeLayout = "2006-01-02T15:04:05"

// AppointmentDTO is the listing payload. Customer/service names come from
// the joined rows and are nil when the referenced record was deleted.
type AppointmentDTO struct {
	ID                  int64           `json:"id"`
	CustomerID          *int64          `json:"customer_id"`
	ServiceID           *int64          `json:"service_id"`
	AppointmentDatetime string          `json:"appointment_datetime"`
	Status              string          `json:"status"`
	Notes               *string         `json:"notes"`
	PriceAtBooking      decimal.Decimal `json:"price_at_booking"`
	CustomerName        *string         `json:"customer_name"`
	ServiceName         *string         `json:"service_name"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// AppointmentDetailDTO additionally carries contact data and the service's
// price as it stands today, next to the booked snapshot.
type AppointmentDetailDTO struct {
	AppointmentDTO
	CustomerEmail       *string          `json:"customer_email"`
	CustomerPhone       *string          `json:"customer_phone"`
	ServiceCurrentPrice *decimal.Decimal `json:"service_current_price"`
}

// NewAppointmentDTO builds a listing DTO from the persisted model.
func NewAppointmentDTO(appt *models.Appointment) *AppointmentDTO {
	dto := &AppointmentDTO{
		ID:                  appt.ID,
		CustomerID:          appt.CustomerID,
		ServiceID:           appt.ServiceID,
		AppointmentDatetime: appt.AppointmentDatetime.Format(datetimeLayout),
		Status:              appt.Status,
		Notes:               appt.Notes,
		PriceAtBooking:      appt.PriceAtBooking,
		CreatedAt:           appt.CreatedAt,
		UpdatedAt:           appt.UpdatedAt,
	}
	if appt.Customer != nil {
		dto.CustomerName = &appt.Customer.Name
	}
	if appt.Service != nil {
		dto.ServiceName = &appt.Service.Name
	}
	return dto
}

// NewAppointmentDetailDTO builds the detail payload.
func NewAppointmentDetailDTO(appt *models.Appointment) *AppointmentDetailDTO {
	detail := &AppointmentDetailDTO{AppointmentDTO: *NewAppointmentDTO(appt)}
	if appt.Customer != nil {
		detail.CustomerEmail = appt.Customer.Email
		detail.CustomerPhone = appt.Customer.Phone
	}
	if appt.Service != nil {
		price := appt.Service.Price
		detail.ServiceCurrentPrice = &price
	}
	return detail
}

// NewAppointmentDTOs maps a list of models.
func NewAppointmentDTOs(rows []models.Appointment) []AppointmentDTO {
	dtos := make([]AppointmentDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewAppointmentDTO(&rows[i])
	}
	return dtos
}
