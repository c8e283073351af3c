package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment/apptest"
	usecase "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type apiFixture struct {
	store   *apptest.Store
	router  *gin.Engine
	barber  uint
	haircut uint
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	s := apptest.NewStore()
	b := s.AddBarber("João", true)
	s.AddWorkingHours(b, 1, "09:00", "12:00", true)
	s.AddWorkingHours(b, 1, "14:00", "18:00", true)

	h := NewAppointmentHandler(usecase.Deps{
		Repo: s,
		Now:  func() time.Time { return monday },
	}, SlotSettings{Step: 30, DefaultDuration: 30})

	r := gin.New()
	r.GET("/appointments", h.List)
	r.GET("/appointments/available-slots/:barberId", h.AvailableSlots)
	r.GET("/appointments/:id", h.Get)
	r.POST("/appointments", h.Create)
	r.PUT("/appointments/:id", h.Update)
	r.PATCH("/appointments/:id/status", h.UpdateStatus)
	r.DELETE("/appointments/:id", h.Delete)

	return &apiFixture{
		store:   s,
		router:  r,
		barber:  b,
		haircut: s.AddService("Corte", 30, true),
	}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) booking(start string) gin.H {
	return gin.H{
		"barber_id":    f.barber,
		"service_id":   f.haircut,
		"client_name":  "Maria",
		"client_phone": "11999990000",
		"date":         "2025-03-10",
		"start_time":   start,
	}
}

type appointmentBody struct {
	ID        uint   `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type errorBody struct {
	Code    string          `json:"error_code"`
	Message string          `json:"message"`
	Windows []domain.Window `json:"windows"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) errorBody {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
	body := decode[errorBody](t, w)
	if body.Code != code {
		t.Fatalf("expected error_code %q, got %q", code, body.Code)
	}
	return body
}

func TestCreateAppointment_Created(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/appointments", f.booking("10:00"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	ap := decode[appointmentBody](t, w)
	if ap.StartTime != "10:00" || ap.EndTime != "10:30" || ap.Status != string(domain.StatusPending) {
		t.Fatalf("unexpected appointment %+v", ap)
	}
	if f.store.AppointmentCount() != 1 {
		t.Fatalf("expected 1 stored appointment, got %d", f.store.AppointmentCount())
	}
}

func TestCreateAppointment_RejectionMapping(t *testing.T) {
	f := newAPIFixture(t)
	if w := f.do(t, http.MethodPost, "/appointments", f.booking("10:00")); w.Code != http.StatusCreated {
		t.Fatalf("setup booking failed: %d", w.Code)
	}

	// mesmo horário
	expectError(t, f.do(t, http.MethodPost, "/appointments", f.booking("10:00")), http.StatusConflict, "slot_taken")

	// almoço entre as janelas
	body := expectError(t, f.do(t, http.MethodPost, "/appointments", f.booking("12:00")), http.StatusBadRequest, "outside_working_hours")
	if len(body.Windows) != 2 || body.Windows[0] != (domain.Window{Start: "09:00", End: "12:00"}) {
		t.Fatalf("expected working windows in body, got %+v", body.Windows)
	}

	unknown := f.booking("11:00")
	unknown["barber_id"] = 999
	expectError(t, f.do(t, http.MethodPost, "/appointments", unknown), http.StatusNotFound, "not_found")

	malformed := f.booking("9h")
	expectError(t, f.do(t, http.MethodPost, "/appointments", malformed), http.StatusBadRequest, "malformed_time")

	badDate := f.booking("11:00")
	badDate["date"] = "10/03/2025"
	expectError(t, f.do(t, http.MethodPost, "/appointments", badDate), http.StatusBadRequest, "invalid_date")
}

func TestCreateAppointment_BindingErrors(t *testing.T) {
	f := newAPIFixture(t)

	missing := f.booking("10:00")
	delete(missing, "client_phone")
	expectError(t, f.do(t, http.MethodPost, "/appointments", missing), http.StatusBadRequest, "invalid_request")

	badEmail := f.booking("10:00")
	badEmail["client_email"] = "not-an-email"
	expectError(t, f.do(t, http.MethodPost, "/appointments", badEmail), http.StatusBadRequest, "invalid_request")

	if f.store.AppointmentCount() != 0 {
		t.Fatal("nothing should be stored")
	}
}

func TestAvailableSlots(t *testing.T) {
	f := newAPIFixture(t)
	f.store.AddAppointment(f.barber, f.haircut, monday, "10:00", "10:30", domain.StatusConfirmed)

	w := f.do(t, http.MethodGet, "/appointments/available-slots/"+strconv.Itoa(int(f.barber))+"?date=2025-03-10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	out := decode[usecase.AvailableSlotsOutput](t, w)
	// 09-12 e 14-18 em passos de 30 = 14, menos o das 10:00
	if len(out.AvailableSlots) != 13 || out.ServiceDuration != 30 {
		t.Fatalf("unexpected slots %+v", out)
	}
	for _, s := range out.AvailableSlots {
		if s == "10:00" {
			t.Fatal("booked slot must not be offered")
		}
	}

	path := "/appointments/available-slots/" + strconv.Itoa(int(f.barber))
	expectError(t, f.do(t, http.MethodGet, path, nil), http.StatusBadRequest, "date_required")
	expectError(t, f.do(t, http.MethodGet, "/appointments/available-slots/abc?date=2025-03-10", nil), http.StatusBadRequest, "invalid_id")
	expectError(t, f.do(t, http.MethodGet, "/appointments/available-slots/999?date=2025-03-10", nil), http.StatusNotFound, "not_found")
	expectError(t, f.do(t, http.MethodGet, path+"?date=2025-03-10&service_id=x", nil), http.StatusBadRequest, "invalid_service_id")
}

func TestAppointmentAdminFlow(t *testing.T) {
	f := newAPIFixture(t)
	id := f.store.AddAppointment(f.barber, f.haircut, monday, "10:00", "10:30", domain.StatusPending)
	path := "/appointments/" + strconv.Itoa(int(id))

	if w := f.do(t, http.MethodGet, path, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	expectError(t, f.do(t, http.MethodGet, "/appointments/999", nil), http.StatusNotFound, "appointment_not_found")

	expectError(t, f.do(t, http.MethodPatch, path+"/status", gin.H{"status": "DONE"}), http.StatusBadRequest, "invalid_status")
	expectError(t, f.do(t, http.MethodPatch, path+"/status", gin.H{}), http.StatusBadRequest, "status_required")

	if w := f.do(t, http.MethodPatch, path+"/status", gin.H{"status": "CANCELLED"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	ap, _ := f.store.Appointment(id)
	if ap.Status != string(domain.StatusCancelled) || ap.CancelledAt == nil {
		t.Fatalf("expected cancelled with timestamp, got %+v", ap)
	}

	// remarcar para fora do expediente
	expectError(t, f.do(t, http.MethodPut, path, gin.H{"start_time": "19:00", "status": "PENDING"}), http.StatusBadRequest, "outside_working_hours")

	if w := f.do(t, http.MethodPut, path, gin.H{"start_time": "15:00", "status": "PENDING"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	ap, _ = f.store.Appointment(id)
	if ap.StartTime != "15:00" || ap.EndTime != "15:30" {
		t.Fatalf("expected rescheduled to 15:00-15:30, got %s-%s", ap.StartTime, ap.EndTime)
	}

	if w := f.do(t, http.MethodDelete, path, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	expectError(t, f.do(t, http.MethodDelete, path, nil), http.StatusNotFound, "appointment_not_found")
}

func TestListAppointments(t *testing.T) {
	f := newAPIFixture(t)
	f.store.AddAppointment(f.barber, f.haircut, monday, "10:00", "10:30", domain.StatusPending)
	f.store.AddAppointment(f.barber, f.haircut, monday.AddDate(0, 0, 7), "10:00", "10:30", domain.StatusPending)

	w := f.do(t, http.MethodGet, "/appointments?date=2025-03-10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decode[[]json.RawMessage](t, w); len(got) != 1 {
		t.Fatalf("expected 1 appointment on monday, got %d", len(got))
	}

	expectError(t, f.do(t, http.MethodGet, "/appointments?barber_id=0", nil), http.StatusBadRequest, "invalid_barber_id")
}

func TestInfraErrorIsInternal(t *testing.T) {
	f := newAPIFixture(t)
	f.store.Err = errors.New("connection refused")

	w := f.do(t, http.MethodGet, "/appointments/available-slots/"+strconv.Itoa(int(f.barber))+"?date=2025-03-10", nil)
	body := expectError(t, w, http.StatusInternalServerError, "internal_error")
	if body.Message == "connection refused" {
		t.Fatal("infra details must not leak")
	}
}
