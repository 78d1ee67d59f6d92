package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rmoralesdev/salon-backoffice/pkg/db/models"
)

// ListFilters narrows the appointment listing. All filters AND together.
// StartDate/EndDate compare on the date part, both ends inclusive.
type ListFilters struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CustomerID *int64
	ServiceID  *int64
	Status     *string
}

// Repository wraps appointment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads an appointment with its customer and service, either of
// which may be gone (nulled FK after a delete).
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		First(&appt, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListAppointments returns appointments newest first, narrowed by filters.
func (r *Repository) ListAppointments(ctx context.Context, filters ListFilters) ([]models.Appointment, error) {
	qb := r.db.WithContext(ctx)

	if filters.StartDate != nil {
		start := dateFloor(*filters.StartDate)
		qb = qb.Where("appointment_datetime >= ?", start)
	}
	if filters.EndDate != nil {
		// inclusive date part: anything strictly before the next midnight
		end := dateFloor(*filters.EndDate).AddDate(0, 0, 1)
		qb = qb.Where("appointment_datetime < ?", end)
	}
	if filters.CustomerID != nil {
		qb = qb.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.ServiceID != nil {
		qb = qb.Where("service_id = ?", *filters.ServiceID)
	}
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}

	var rows []models.Appointment
	err := qb.
		Preload("Customer").
		Preload("Service").
		Order("appointment_datetime DESC").
		Find(&rows).
		Error
	return rows, err
}

// CreateAppointment inserts a new appointment row.
func (r *Repository) CreateAppointment(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	if err := r.db.WithContext(ctx).Create(appt).Error; err != nil {
		return nil, err
	}
	return appt, nil
}

// UpdateAppointment saves the full appointment row.
func (r *Repository) UpdateAppointment(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	if err := r.db.WithContext(ctx).Omit("Customer", "Service").Save(appt).Error; err != nil {
		return nil, err
	}
	return appt, nil
}

// DeleteAppointment removes an appointment by ID.
func (r *Repository) DeleteAppointment(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Appointment{}).Error
}

func dateFloor(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
