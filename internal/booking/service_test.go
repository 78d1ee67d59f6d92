package booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
	"github.com/rmoralesdev/salon-backoffice/pkg/types"
)

func strPtr(v string) *string { return &v }

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected %s, got %s (%v)", code, appErr.Code(), err)
	}
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestCreateAppointmentSnapshotsPrice(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "Ana")
	haircut := mustCreateCatalogService(t, client, "Haircut", 35, true)

	created, err := svc.CreateAppointment(ctx, CreateAppointmentInput{
		CustomerID:          customer.ID,
		ServiceID:           haircut.ID,
		AppointmentDatetime: at(2026, 3, 14, 15, 30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.PriceAtBooking.Equal(decimal.NewFromInt(35)) {
		t.Fatalf("expected snapshot 35, got %s", created.PriceAtBooking)
	}
	if created.Status != DefaultStatus {
		t.Fatalf("expected default status, got %q", created.Status)
	}
	if created.CustomerName == nil || *created.CustomerName != "Ana" {
		t.Fatalf("expected joined customer name, got %v", created.CustomerName)
	}
	if created.AppointmentDatetime != "2026-03-14T15:30:00" {
		t.Fatalf("unexpected datetime rendering %q", created.AppointmentDatetime)
	}

	// raising the catalog price must not touch the existing booking
	if err := client.DB().Model(haircut).Update("price", decimal.NewFromInt(50)).Error; err != nil {
		t.Fatalf("raise price: %v", err)
	}
	detail, err := svc.GetAppointment(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !detail.PriceAtBooking.Equal(decimal.NewFromInt(35)) {
		t.Fatalf("snapshot drifted to %s", detail.PriceAtBooking)
	}
	if detail.ServiceCurrentPrice == nil || !detail.ServiceCurrentPrice.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected current price 50, got %v", detail.ServiceCurrentPrice)
	}
}

func TestCreateAppointmentRejectsMissingOrInactiveTargets(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "Ana")
	retired := mustCreateCatalogService(t, client, "Perm", 60, false)
	active := mustCreateCatalogService(t, client, "Haircut", 35, true)

	_, err := svc.CreateAppointment(ctx, CreateAppointmentInput{
		CustomerID:          9999,
		ServiceID:           active.ID,
		AppointmentDatetime: at(2026, 3, 14, 15, 30),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)

	// an inactive service books exactly like a missing one
	_, err = svc.CreateAppointment(ctx, CreateAppointmentInput{
		CustomerID:          customer.ID,
		ServiceID:           retired.ID,
		AppointmentDatetime: at(2026, 3, 14, 15, 30),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.CreateAppointment(ctx, CreateAppointmentInput{
		CustomerID:          customer.ID,
		ServiceID:           9999,
		AppointmentDatetime: at(2026, 3, 14, 15, 30),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateAppointmentResnapshotsOnlyOnServiceChange(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "Ana")
	haircut := mustCreateCatalogService(t, client, "Haircut", 35, true)
	color := mustCreateCatalogService(t, client, "Color", 80, true)

	created, err := svc.CreateAppointment(ctx, CreateAppointmentInput{
		CustomerID:          customer.ID,
		ServiceID:           haircut.ID,
		AppointmentDatetime: at(2026, 3, 14, 15, 30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// catalog price changes after booking
	if err := client.DB().Model(haircut).Update("price", decimal.NewFromInt(45)).Error; err != nil {
		t.Fatalf("raise price: %v", err)
	}

	// same service id: snapshot must not move, even though the price did
	unchanged, err := svc.UpdateAppointment(ctx, created.ID, UpdateAppointmentInput{
		ServiceID: types.OptionalOf(haircut.ID),
		Status:    types.OptionalOf("Confirmed"),
	})
	if err != nil {
		t.Fatalf("update same service: %v", err)
	}
	if !unchanged.PriceAtBooking.Equal(decimal.NewFromInt(35)) {
		t.Fatalf("snapshot moved on same-service update: %s", unchanged.PriceAtBooking)
	}
	if unchanged.Status != "Confirmed" {
		t.Fatalf("expected status update, got %q", unchanged.Status)
	}

	// different service id: snapshot follows the new service
	switched, err := svc.UpdateAppointment(ctx, created.ID, UpdateAppointmentInput{
		ServiceID: types.OptionalOf(color.ID),
	})
	if err != nil {
		t.Fatalf("switch service: %v", err)
	}
	if !switched.PriceAtBooking.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected re-snapshot 80, got %s", switched.PriceAtBooking)
	}
}

func TestUpdateAppointmentRejectsInactiveServiceTarget(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "Ana")
	haircut := mustCreateCatalogService(t, client, "Haircut", 35, true)
	retired := mustCreateCatalogService(t, client, "Perm", 60, false)

	created, err := svc.CreateAppointment(ctx, CreateAppointmentInput{
		CustomerID:          customer.ID,
		ServiceID:           haircut.ID,
		AppointmentDatetime: at(2026, 3, 14, 15, 30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdateAppointment(ctx, created.ID, UpdateAppointmentInput{
		ServiceID: types.OptionalOf(retired.ID),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.UpdateAppointment(ctx, created.ID, UpdateAppointmentInput{
		ServiceID: types.OptionalNull[int64](),
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateAppointmentAcceptsAnyStatusText(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "Ana")
	haircut := mustCreateCatalogService(t, client, "Haircut", 35, true)

	created, err := svc.CreateAppointment(ctx, CreateAppointmentInput{
		CustomerID:          customer.ID,
		ServiceID:           haircut.ID,
		AppointmentDatetime: at(2026, 3, 14, 15, 30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	custom, err := svc.UpdateAppointment(ctx, created.ID, UpdateAppointmentInput{
		Status: types.OptionalOf("no-show, called twice"),
	})
	if err != nil {
		t.Fatalf("update custom status: %v", err)
	}
	if custom.Status != "no-show, called twice" {
		t.Fatalf("expected desk label kept verbatim, got %q", custom.Status)
	}

	// blank is a valid label too; only explicit null is rejected
	cleared, err := svc.UpdateAppointment(ctx, created.ID, UpdateAppointmentInput{
		Status: types.OptionalOf(""),
	})
	if err != nil {
		t.Fatalf("update blank status: %v", err)
	}
	if cleared.Status != "" {
		t.Fatalf("expected blank status stored, got %q", cleared.Status)
	}

	_, err = svc.UpdateAppointment(ctx, created.ID, UpdateAppointmentInput{
		Status: types.OptionalNull[string](),
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestListAppointmentsFiltersAndOrder(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	ana := mustCreateCustomer(t, client, "Ana")
	mia := mustCreateCustomer(t, client, "Mia")
	haircut := mustCreateCatalogService(t, client, "Haircut", 35, true)

	book := func(customerID int64, ts time.Time, status string) *AppointmentDetailDTO {
		created, err := svc.CreateAppointment(ctx, CreateAppointmentInput{
			CustomerID:          customerID,
			ServiceID:           haircut.ID,
			AppointmentDatetime: ts,
			Status:              strPtr(status),
		})
		if err != nil {
			t.Fatalf("book: %v", err)
		}
		return created
	}

	early := book(ana.ID, at(2026, 3, 10, 9, 0), "Scheduled")
	mid := book(mia.ID, at(2026, 3, 12, 11, 0), "Completed")
	late := book(ana.ID, at(2026, 3, 14, 16, 0), "Scheduled")

	all, err := svc.ListAppointments(ctx, ListFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}
	if all[0].ID != late.ID || all[2].ID != early.ID {
		t.Fatal("expected newest-first ordering")
	}

	start := at(2026, 3, 12, 23, 59) // date part only: the 11:00 row still matches
	end := at(2026, 3, 14, 0, 0)
	ranged, err := svc.ListAppointments(ctx, ListFilters{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("ranged list: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("expected 2 rows in range, got %d", len(ranged))
	}
	if ranged[0].ID != late.ID || ranged[1].ID != mid.ID {
		t.Fatalf("unexpected ranged rows: %+v", ranged)
	}

	status := "Completed"
	byStatus, err := svc.ListAppointments(ctx, ListFilters{Status: &status})
	if err != nil {
		t.Fatalf("status list: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != mid.ID {
		t.Fatalf("unexpected status rows: %+v", byStatus)
	}

	byCustomer, err := svc.ListAppointments(ctx, ListFilters{CustomerID: &ana.ID})
	if err != nil {
		t.Fatalf("customer list: %v", err)
	}
	if len(byCustomer) != 2 {
		t.Fatalf("expected 2 rows for customer, got %d", len(byCustomer))
	}
}

func TestDeleteAppointment(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "Ana")
	haircut := mustCreateCatalogService(t, client, "Haircut", 35, true)

	created, err := svc.CreateAppointment(ctx, CreateAppointmentInput{
		CustomerID:          customer.ID,
		ServiceID:           haircut.ID,
		AppointmentDatetime: at(2026, 3, 14, 15, 30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteAppointment(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = svc.GetAppointment(ctx, created.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}
