package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/seed"
)

func serve(h gin.HandlerFunc, method, route, path string, body any) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, h)

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// -------- auth --------

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{AdminPasswordHash: string(hash), JWTSecret: "k"}
	h := NewAuthHandler(cfg)
	fixed := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	w := serve(h.Login, http.MethodPost, "/login", "/login", gin.H{"password": "errada"})
	expectError(t, w, http.StatusUnauthorized, "invalid_credentials")

	w = serve(h.Login, http.MethodPost, "/login", "/login", gin.H{})
	expectError(t, w, http.StatusBadRequest, "password_required")

	w = serve(h.Login, http.MethodPost, "/login", "/login", gin.H{"password": "segredo"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	out := decode[struct {
		Token string `json:"token"`
	}](t, w)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(out.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("k"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("token should verify: %v", err)
	}
	if claims["role"] != "admin" || claims["sub"] != "admin" {
		t.Fatalf("unexpected claims %v", claims)
	}
	exp, _ := claims.GetExpirationTime()
	if !exp.Time.Equal(fixed.Add(24 * time.Hour)) {
		t.Fatalf("expected 24h expiry, got %s", exp.Time)
	}
}

func TestLogin_NotConfigured(t *testing.T) {
	h := NewAuthHandler(&config.Config{})
	w := serve(h.Login, http.MethodPost, "/login", "/login", gin.H{"password": "x"})
	expectError(t, w, http.StatusServiceUnavailable, "auth_not_configured")
}

// -------- validação antes do banco --------
// Resources sem DB: qualquer acesso ao banco faria o teste entrar em pânico.

func TestWorkingHours_Validation(t *testing.T) {
	h := NewWorkingHoursHandler(Resources{})

	cases := []struct {
		name string
		body gin.H
		code string
	}{
		{"start after end", gin.H{"barber_id": 1, "day_of_week": 1, "start_time": "18:00", "end_time": "09:00"}, "invalid_time_range"},
		{"equal bounds", gin.H{"barber_id": 1, "day_of_week": 1, "start_time": "09:00", "end_time": "09:00"}, "invalid_time_range"},
		{"malformed", gin.H{"barber_id": 1, "day_of_week": 1, "start_time": "9h", "end_time": "18:00"}, "invalid_time_format"},
		{"past midnight", gin.H{"barber_id": 1, "day_of_week": 1, "start_time": "09:00", "end_time": "25:00"}, "invalid_time_format"},
		{"bad weekday", gin.H{"barber_id": 1, "day_of_week": 7, "start_time": "09:00", "end_time": "18:00"}, "invalid_request"},
		{"missing weekday", gin.H{"barber_id": 1, "start_time": "09:00", "end_time": "18:00"}, "invalid_request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(h.Create, http.MethodPost, "/wh", "/wh", tc.body)
			expectError(t, w, http.StatusBadRequest, tc.code)
		})
	}
}

func TestWorkingHoursBatch_Validation(t *testing.T) {
	h := NewWorkingHoursHandler(Resources{})

	w := serve(h.Batch, http.MethodPost, "/batch", "/batch", gin.H{
		"barber_id":   1,
		"day_of_week": 1,
		"schedules": []gin.H{
			{"start_time": "09:00", "end_time": "12:00"},
			{"start_time": "14:00", "end_time": "13:00"},
		},
	})
	expectError(t, w, http.StatusBadRequest, "invalid_time_range")
}

func TestNormalizeWindow(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	start, end, ok := normalizeWindow(c, "9:00", "24:00")
	if !ok || start != "09:00" || end != "24:00" {
		t.Fatalf("got %q %q %v", start, end, ok)
	}
}

func TestService_Validation(t *testing.T) {
	h := NewServiceHandler(Resources{})

	w := serve(h.Create, http.MethodPost, "/s", "/s", gin.H{"name": "Corte", "duration": 0, "price": 10})
	expectError(t, w, http.StatusBadRequest, "invalid_request")

	w = serve(h.Create, http.MethodPost, "/s", "/s", gin.H{"name": "Corte", "duration": 30})
	expectError(t, w, http.StatusBadRequest, "invalid_request")

	w = serve(h.Create, http.MethodPost, "/s", "/s", gin.H{"name": "   ", "duration": 30, "price": 0})
	expectError(t, w, http.StatusBadRequest, "name_required")

	w = serve(h.Get, http.MethodGet, "/s/:id", "/s/abc", nil)
	expectError(t, w, http.StatusBadRequest, "invalid_id")
}

func TestBarber_Validation(t *testing.T) {
	h := NewBarberHandler(Resources{})

	w := serve(h.Create, http.MethodPost, "/b", "/b", gin.H{"name": "Ana", "email": "nope"})
	expectError(t, w, http.StatusBadRequest, "invalid_request")

	w = serve(h.Create, http.MethodPost, "/b", "/b", gin.H{"name": " "})
	expectError(t, w, http.StatusBadRequest, "name_required")
}

func TestNonWorkingDay_Validation(t *testing.T) {
	h := NewNonWorkingDayHandler(Resources{})

	w := serve(h.Create, http.MethodPost, "/d", "/d", gin.H{"date": "25/12/2025"})
	expectError(t, w, http.StatusBadRequest, "invalid_date")

	w = serve(h.Create, http.MethodPost, "/d", "/d", gin.H{"reason": "Natal"})
	expectError(t, w, http.StatusBadRequest, "invalid_request")

	w = serve(h.List, http.MethodGet, "/d", "/d?from=amanha", nil)
	expectError(t, w, http.StatusBadRequest, "invalid_date")
}

func TestConfig_Validation(t *testing.T) {
	h := NewConfigHandler(Resources{})

	w := serve(h.Upsert, http.MethodPost, "/c", "/c", gin.H{"key": "slot_interval"})
	expectError(t, w, http.StatusBadRequest, "invalid_request")

	if !affectsSlots("slot_interval") || affectsSlots("business_name") {
		t.Fatal("only slot_interval changes slot computation")
	}
}

// -------- init --------

func TestSeed_SecretChecks(t *testing.T) {
	h := NewInitHandler(seed.NewSeeder(nil, "", nil), nil, nil)
	w := serve(h.Seed, http.MethodPost, "/seed", "/seed", gin.H{"secret": "x"})
	expectError(t, w, http.StatusInternalServerError, "init_secret_not_configured")

	h = NewInitHandler(seed.NewSeeder(nil, "certo", nil), nil, nil)
	w = serve(h.Seed, http.MethodPost, "/seed", "/seed", gin.H{"secret": "errado"})
	expectError(t, w, http.StatusForbidden, "invalid_secret")

	w = serve(h.Seed, http.MethodPost, "/seed", "/seed", nil)
	expectError(t, w, http.StatusForbidden, "invalid_secret")
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		query       string
		page, limit int
	}{
		{"", 1, 50},
		{"?page=3&limit=20", 3, 20},
		{"?page=-1&limit=500", 1, 50},
		{"?page=x&limit=y", 1, 50},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/audit-logs"+tc.query, nil)

		page, limit := pageParams(c)
		if page != tc.page || limit != tc.limit {
			t.Errorf("%q: got page=%d limit=%d", tc.query, page, limit)
		}
	}
}
