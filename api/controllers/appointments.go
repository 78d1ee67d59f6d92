package controllers

import (
	"net/http"
	"time"

	"github.com/rmoralesdev/salon-backoffice/api/responses"
	"github.com/rmoralesdev/salon-backoffice/api/validators"
	"github.com/rmoralesdev/salon-backoffice/internal/booking"
	"github.com/rmoralesdev/salon-backoffice/internal/validate"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
	"github.com/rmoralesdev/salon-backoffice/pkg/logger"
	"github.com/rmoralesdev/salon-backoffice/pkg/types"
)

// AppointmentsList returns bookings newest first, narrowed by date range,
// customer, service and status.
func AppointmentsList(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		startDate, err := validators.ParseQueryDatePtr(r, "start_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		endDate, err := validators.ParseQueryDatePtr(r, "end_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customerID, err := validators.ParseQueryInt64Ptr(r, "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		serviceID, err := validators.ParseQueryInt64Ptr(r, "service_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListAppointments(r.Context(), booking.ListFilters{
			StartDate:  startDate,
			EndDate:    endDate,
			CustomerID: customerID,
			ServiceID:  serviceID,
			Status:     validators.ParseQueryStringPtr(r, "status"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// AppointmentCreate books against an existing customer and an active
// service, freezing the price.
func AppointmentCreate(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		var payload createAppointmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appt, err := svc.CreateAppointment(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, appt)
	}
}

// AppointmentDetail loads the booking with customer contact data and the
// service's current price next to the snapshot.
func AppointmentDetail(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appt, err := svc.GetAppointment(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, appt)
	}
}

// AppointmentUpdate applies a partial update to a booking.
func AppointmentUpdate(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAppointmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appt, err := svc.UpdateAppointment(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, appt)
	}
}

// AppointmentDelete removes a booking.
func AppointmentDelete(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteAppointment(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

type createAppointmentRequest struct {
	CustomerID          int64   `json:"customer_id" validate:"required"`
	ServiceID           int64   `json:"service_id" validate:"required"`
	AppointmentDatetime string  `json:"appointment_datetime" validate:"required"`
	Status              *string `json:"status,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

func (r createAppointmentRequest) toCreateInput() (booking.CreateAppointmentInput, error) {
	ts, err := validate.DateTime("appointment_datetime", r.AppointmentDatetime)
	if err != nil {
		return booking.CreateAppointmentInput{}, err
	}
	return booking.CreateAppointmentInput{
		CustomerID:          r.CustomerID,
		ServiceID:           r.ServiceID,
		AppointmentDatetime: ts,
		Status:              r.Status,
		Notes:               r.Notes,
	}, nil
}

type updateAppointmentRequest struct {
	CustomerID          types.Optional[int64]  `json:"customer_id"`
	ServiceID           types.Optional[int64]  `json:"service_id"`
	AppointmentDatetime types.Optional[string] `json:"appointment_datetime"`
	Status              types.Optional[string] `json:"status"`
	Notes               types.Optional[string] `json:"notes"`
}

func (r updateAppointmentRequest) toUpdateInput() (booking.UpdateAppointmentInput, error) {
	var datetime types.Optional[time.Time]
	if r.AppointmentDatetime.Set {
		datetime.Set = true
		if r.AppointmentDatetime.Null {
			datetime.Null = true
		} else {
			ts, err := validate.DateTime("appointment_datetime", r.AppointmentDatetime.Value)
			if err != nil {
				return booking.UpdateAppointmentInput{}, err
			}
			datetime.Value = ts
		}
	}

	return booking.UpdateAppointmentInput{
		CustomerID:          r.CustomerID,
		ServiceID:           r.ServiceID,
		AppointmentDatetime: datetime,
		Status:              r.Status,
		Notes:               r.Notes,
	}, nil
}
