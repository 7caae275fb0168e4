package postgres

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"aihc/backend/internal/domain"
	"aihc/backend/internal/store"
)

func TestPostgresIntegration_AppointmentCRUD(t *testing.T) {
	databaseURL := strings.TrimSpace(os.Getenv("AIHC_TEST_DATABASE_URL"))
	if databaseURL == "" {
		t.Skip("AIHC_TEST_DATABASE_URL not set")
	}

	// A single connection keeps the session-scoped search_path stable.
	db, err := Open(databaseURL, PoolConfig{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(db)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema := "aihc_test_" + randomHex(t, 8)
	if _, err := db.NewRaw("CREATE SCHEMA " + schema).Exec(ctx); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		cctx, ccancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer ccancel()
		_, _ = db.NewRaw("DROP SCHEMA IF EXISTS " + schema + " CASCADE").Exec(cctx)
	})
	if _, err := db.NewRaw("SET search_path TO " + schema).Exec(ctx); err != nil {
		t.Fatalf("set search_path: %v", err)
	}

	ddl := []string{
		`CREATE TABLE patients (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			age INT NOT NULL,
			gender TEXT NOT NULL,
			medical_history TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE doctors (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			specialty TEXT NOT NULL,
			bio TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE appointments (
			id BIGSERIAL PRIMARY KEY,
			patient_id BIGINT NOT NULL,
			doctor_id BIGINT NOT NULL,
			date_time TIMESTAMPTZ NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
			t.Fatalf("ddl: %v", err)
		}
	}

	patients := NewPatientRepo(db)
	doctors := NewDoctorRepo(db)
	appts := NewAppointmentRepo(db)

	p, err := patients.Create(ctx, domain.Patient{Name: "Ada Park", Age: 41, Gender: "female", MedicalHistory: "none"})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected assigned patient id")
	}

	d, err := doctors.Create(ctx, domain.Doctor{Name: "Grace Osei", Specialty: "cardiology", Bio: "bio"})
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}

	when := time.Date(2026, 7, 1, 10, 0, 0, 0, time.Local)
	a, err := appts.Create(ctx, domain.Appointment{
		PatientID: p.ID,
		DoctorID:  d.ID,
		DateTime:  when,
		Reason:    "checkup",
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if a.ID == 0 {
		t.Fatalf("expected assigned appointment id")
	}

	got, err := appts.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get appointment: %v", err)
	}
	if !got.DateTime.Equal(when) {
		t.Fatalf("date_time = %v, want %v", got.DateTime, when)
	}

	byPatient, err := appts.List(ctx, store.AppointmentFilter{PatientID: p.ID})
	if err != nil {
		t.Fatalf("list by patient: %v", err)
	}
	if len(byPatient) != 1 || byPatient[0].ID != a.ID {
		t.Fatalf("list by patient = %+v, want the one created", byPatient)
	}

	a.Reason = "follow-up"
	a.DateTime = when.Add(15 * time.Minute)
	updated, err := appts.Update(ctx, a)
	if err != nil {
		t.Fatalf("update appointment: %v", err)
	}
	if updated.Reason != "follow-up" {
		t.Fatalf("reason = %q, want follow-up", updated.Reason)
	}

	if err := appts.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete appointment: %v", err)
	}
	if err := appts.Delete(ctx, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete err = %v, want %v", err, store.ErrNotFound)
	}
	if _, err := appts.Get(ctx, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get after delete err = %v, want %v", err, store.ErrNotFound)
	}

	if _, err := appts.Update(ctx, domain.Appointment{ID: 999999, PatientID: p.ID, DoctorID: d.ID, DateTime: when}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update missing err = %v, want %v", err, store.ErrNotFound)
	}
}

func randomHex(t *testing.T, bytesLen int) string {
	t.Helper()
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("rand: %v", err)
	}
	return hex.EncodeToString(b)
}
