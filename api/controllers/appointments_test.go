package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rmoralesdev/salon-backoffice/internal/booking"
)

type stubBookingService struct {
	createFn func(ctx context.Context, input booking.CreateAppointmentInput) (*booking.AppointmentDetailDTO, error)
	listFn   func(ctx context.Context, filters booking.ListFilters) ([]booking.AppointmentDTO, error)
	getFn    func(ctx context.Context, id int64) (*booking.AppointmentDetailDTO, error)
	updateFn func(ctx context.Context, id int64, input booking.UpdateAppointmentInput) (*booking.AppointmentDetailDTO, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubBookingService) CreateAppointment(ctx context.Context, input booking.CreateAppointmentInput) (*booking.AppointmentDetailDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &booking.AppointmentDetailDTO{}, nil
}

func (s *stubBookingService) ListAppointments(ctx context.Context, filters booking.ListFilters) ([]booking.AppointmentDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filters)
	}
	return nil, nil
}

func (s *stubBookingService) GetAppointment(ctx context.Context, id int64) (*booking.AppointmentDetailDTO, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &booking.AppointmentDetailDTO{}, nil
}

func (s *stubBookingService) UpdateAppointment(ctx context.Context, id int64, input booking.UpdateAppointmentInput) (*booking.AppointmentDetailDTO, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, input)
	}
	return &booking.AppointmentDetailDTO{}, nil
}

func (s *stubBookingService) DeleteAppointment(ctx context.Context, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func TestAppointmentCreateParsesDatetime(t *testing.T) {
	var captured booking.CreateAppointmentInput
	svc := &stubBookingService{
		createFn: func(_ context.Context, input booking.CreateAppointmentInput) (*booking.AppointmentDetailDTO, error) {
			captured = input
			return &booking.AppointmentDetailDTO{}, nil
		},
	}

	body := `{"customer_id":1,"service_id":2,"appointment_datetime":"2026-08-30T10:00:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AppointmentCreate(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	require.Equal(t, int64(1), captured.CustomerID)
	require.Equal(t, int64(2), captured.ServiceID)
	require.Equal(t, time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local), captured.AppointmentDatetime)
}

func TestAppointmentCreateRejectsBadDatetime(t *testing.T) {
	body := `{"customer_id":1,"service_id":2,"appointment_datetime":"next tuesday"}`
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AppointmentCreate(&stubBookingService{}, testLogger())(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, resp.Body.Bytes()))
}

func TestAppointmentsListForwardsFilters(t *testing.T) {
	var captured booking.ListFilters
	svc := &stubBookingService{
		listFn: func(_ context.Context, filters booking.ListFilters) ([]booking.AppointmentDTO, error) {
			captured = filters
			return nil, nil
		},
	}

	url := "/api/appointments?start_date=2026-08-01&end_date=2026-08-31&customer_id=3&status=Completed"
	resp := httptest.NewRecorder()
	AppointmentsList(svc, testLogger())(resp, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, captured.StartDate)
	require.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local), *captured.StartDate)
	require.NotNil(t, captured.EndDate)
	require.NotNil(t, captured.CustomerID)
	require.Equal(t, int64(3), *captured.CustomerID)
	require.Nil(t, captured.ServiceID)
	require.NotNil(t, captured.Status)
	require.Equal(t, "Completed", *captured.Status)
}

func TestAppointmentsListRejectsBadCustomerID(t *testing.T) {
	resp := httptest.NewRecorder()
	AppointmentsList(&stubBookingService{}, testLogger())(resp, httptest.NewRequest(http.MethodGet, "/api/appointments?customer_id=ana", nil))

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAppointmentUpdateNullServiceIDPassesThrough(t *testing.T) {
	var captured booking.UpdateAppointmentInput
	svc := &stubBookingService{
		updateFn: func(_ context.Context, id int64, input booking.UpdateAppointmentInput) (*booking.AppointmentDetailDTO, error) {
			captured = input
			return &booking.AppointmentDetailDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/appointments/9", strings.NewReader(`{"service_id":null,"notes":"walk-in"}`))
	req = addRouteParam(req, "id", "9")
	resp := httptest.NewRecorder()
	AppointmentUpdate(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, captured.ServiceID.Set)
	require.True(t, captured.ServiceID.Null)
	require.True(t, captured.Notes.Set)
	require.Equal(t, "walk-in", captured.Notes.Value)
	require.False(t, captured.AppointmentDatetime.Set)
}
