package booking

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rmoralesdev/salon-backoffice/internal/validate"
	"github.com/rmoralesdev/salon-backoffice/pkg/db"
	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
	"github.com/rmoralesdev/salon-backoffice/pkg/types"
)

// DefaultStatus is applied when a booking arrives without one. Status is
// free-form text otherwise; the desk invents its own workflow labels.
const DefaultStatus = "Scheduled"

// Service exposes appointment operations.
type Service interface {
	CreateAppointment(ctx context.Context, input CreateAppointmentInput) (*AppointmentDetailDTO, error)
	ListAppointments(ctx context.Context, filters ListFilters) ([]AppointmentDTO, error)
	GetAppointment(ctx context.Context, id int64) (*AppointmentDetailDTO, error)
	UpdateAppointment(ctx context.Context, id int64, input UpdateAppointmentInput) (*AppointmentDetailDTO, error)
	DeleteAppointment(ctx context.Context, id int64) error
}

// CreateAppointmentInput holds the payload to book an appointment.
type CreateAppointmentInput struct {
	CustomerID          int64
	ServiceID           int64
	AppointmentDatetime time.Time
	Status              *string
	Notes               *string
}

// UpdateAppointmentInput holds partial mutation values. customer_id,
// service_id, datetime and status reject explicit null; notes may be
// cleared.
type UpdateAppointmentInput struct {
	CustomerID          types.Optional[int64]
	ServiceID           types.Optional[int64]
	AppointmentDatetime types.Optional[time.Time]
	Status              types.Optional[string]
	Notes               types.Optional[string]
}

type customerLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
}

type catalogLoader interface {
	FindActiveByID(ctx context.Context, id int64) (*models.Service, error)
}

type service struct {
	repo      *Repository
	dbClient  *db.Client
	customers customerLoader
	catalog   catalogLoader
}

// NewService constructs a booking service instance.
func NewService(repo *Repository, dbClient *db.Client, customers customerLoader, catalog catalogLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer loader required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	return &service{repo: repo, dbClient: dbClient, customers: customers, catalog: catalog}, nil
}

// CreateAppointment books against an existing customer and an active
// service, freezing the service's price into price_at_booking.
func (s *service) CreateAppointment(ctx context.Context, input CreateAppointmentInput) (*AppointmentDetailDTO, error) {
	if err := s.ensureCustomer(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	svc, err := s.loadActiveService(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}

	status := DefaultStatus
	if trimmed := validate.OptionalString(input.Status); trimmed != nil {
		status = *trimmed
	}

	appt := &models.Appointment{
		CustomerID:          &input.CustomerID,
		ServiceID:           &input.ServiceID,
		AppointmentDatetime: input.AppointmentDatetime,
		Status:              status,
		Notes:               validate.OptionalString(input.Notes),
		PriceAtBooking:      svc.Price,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateAppointment(ctx, appt)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert appointment")
	}

	created, err := s.repo.FindByID(ctx, appt.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload appointment")
	}
	return NewAppointmentDetailDTO(created), nil
}

// ListAppointments returns bookings newest first.
func (s *service) ListAppointments(ctx context.Context, filters ListFilters) ([]AppointmentDTO, error) {
	rows, err := s.repo.ListAppointments(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list appointments")
	}
	return NewAppointmentDTOs(rows), nil
}

// GetAppointment loads the booking detail.
func (s *service) GetAppointment(ctx context.Context, id int64) (*AppointmentDetailDTO, error) {
	appt, err := s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewAppointmentDetailDTO(appt), nil
}

// UpdateAppointment applies a partial update. The price snapshot is
// rewritten only when the resolved service id actually changes, and the
// incoming service must be active; pointing the booking at its current
// service is a no-op for the snapshot.
func (s *service) UpdateAppointment(ctx context.Context, id int64, input UpdateAppointmentInput) (*AppointmentDetailDTO, error) {
	appt, err := s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerID.Set {
		if input.CustomerID.Null {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_id cannot be null")
		}
		if err := s.ensureCustomer(ctx, input.CustomerID.Value); err != nil {
			return nil, err
		}
		appt.CustomerID = input.CustomerID.Ptr()
	}

	if input.ServiceID.Set {
		if input.ServiceID.Null {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "service_id cannot be null")
		}
		newID := input.ServiceID.Value
		if appt.ServiceID == nil || *appt.ServiceID != newID {
			svc, err := s.loadActiveService(ctx, newID)
			if err != nil {
				return nil, err
			}
			appt.ServiceID = &newID
			appt.PriceAtBooking = svc.Price
		}
	}

	if input.AppointmentDatetime.Set {
		if input.AppointmentDatetime.Null {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "appointment_datetime cannot be null")
		}
		appt.AppointmentDatetime = input.AppointmentDatetime.Value
	}
	if input.Status.Set {
		if input.Status.Null {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status cannot be null")
		}
		// Status is free-form text; the desk writes whatever labels it
		// wants, including none.
		appt.Status = input.Status.Value
	}
	if input.Notes.Set {
		appt.Notes = validate.OptionalString(input.Notes.Ptr())
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).UpdateAppointment(ctx, appt)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update appointment")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: reload appointment")
	}
	return NewAppointmentDetailDTO(updated), nil
}

// DeleteAppointment removes the booking.
func (s *service) DeleteAppointment(ctx context.Context, id int64) error {
	if _, err := s.loadAppointment(ctx, id); err != nil {
		return err
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteAppointment(ctx, id)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: delete appointment")
	}
	return nil
}

func (s *service) loadAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.NotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "appointment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load appointment")
	}
	return appt, nil
}

func (s *service) ensureCustomer(ctx context.Context, id int64) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		if db.NotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load customer")
	}
	return nil
}

// loadActiveService treats an inactive service exactly like a missing one.
func (s *service) loadActiveService(ctx context.Context, id int64) (*models.Service, error) {
	svc, err := s.catalog.FindActiveByID(ctx, id)
	if err != nil {
		if db.NotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load service")
	}
	return svc, nil
}
