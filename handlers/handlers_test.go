package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"realtalk/models"
	"realtalk/services/booking"
	"realtalk/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// stubService overrides only what each test needs; anything else panics on
// the nil embedded interface.
type stubService struct {
	booking.Service

	price       float64
	slots       []string
	err         error
	receipt     *models.BookingReceipt
	reservation *models.Reservation
	lastBooking models.BookingRequest
}

func (s *stubService) Price(ctx context.Context) (float64, error) {
	return s.price, s.err
}

func (s *stubService) AvailableOn(ctx context.Context, date string) ([]string, error) {
	return s.slots, s.err
}

func (s *stubService) Book(ctx context.Context, req models.BookingRequest) (*models.BookingReceipt, error) {
	s.lastBooking = req
	return s.receipt, s.err
}

func (s *stubService) ConfirmPayment(ctx context.Context, id string) (*models.Reservation, error) {
	return s.reservation, s.err
}

func (s *stubService) DeleteReservation(ctx context.Context, id string) error {
	return s.err
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRespondErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{booking.ErrInvalidDate, http.StatusBadRequest, booking.ErrInvalidDate.Code},
		{booking.ErrNotFound, http.StatusNotFound, booking.ErrNotFound.Code},
		{booking.ErrSlotUnavailable, http.StatusConflict, booking.ErrSlotUnavailable.Code},
		{booking.ErrRescheduleLimit, http.StatusConflict, booking.ErrRescheduleLimit.Code},
		{booking.ErrStoreUnavailable, http.StatusServiceUnavailable, booking.ErrStoreUnavailable.Code},
		{booking.ErrNotificationFailed, http.StatusBadGateway, booking.ErrNotificationFailed.Code},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		svc := &stubService{err: tc.err}
		r := newRouter()
		r.GET("/api/availability/:date", NewBookingHandler(svc).GetAvailabilityForDate)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/availability/2024-06-01", nil))

		if rec.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.status)
		}
		if got := decode(t, rec)["error"]; got != tc.code {
			t.Errorf("%v: error code = %v, want %s", tc.err, got, tc.code)
		}
	}
}

func TestGetPrice(t *testing.T) {
	r := newRouter()
	r.GET("/api/price", NewBookingHandler(&stubService{price: 2.5}).GetPrice)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/price", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode(t, rec)["price"]; got != 2.5 {
		t.Errorf("price = %v, want 2.5", got)
	}
}

func TestGetAvailabilityRejectsBadMonth(t *testing.T) {
	r := newRouter()
	r.GET("/api/availability", NewBookingHandler(&stubService{}).GetAvailability)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/availability?month=june", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decode(t, rec)["error"]; got != booking.ErrInvalidMonth.Code {
		t.Errorf("error = %v", got)
	}
}

func TestCreateBooking(t *testing.T) {
	svc := &stubService{receipt: &models.BookingReceipt{
		Reservation:   models.Reservation{ID: "r1", Name: "Mina"},
		TotalSessions: 2,
		UnitPrice:     2,
		TotalPrice:    4,
	}}
	r := newRouter()
	r.POST("/api/bookings", NewBookingHandler(svc).CreateBooking)

	body := `{"name":"Mina","email":"mina@example.com","slots":{"2024-06-01":["10:00","10:30"]}}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if got := svc.lastBooking.Slots["2024-06-01"]; len(got) != 2 {
		t.Errorf("slots passed to service = %v", got)
	}
	if got := decode(t, rec)["totalPrice"]; got != 4.0 {
		t.Errorf("totalPrice = %v", got)
	}
}

func TestCreateBookingMalformedBody(t *testing.T) {
	r := newRouter()
	r.POST("/api/bookings", NewBookingHandler(&stubService{}).CreateBooking)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decode(t, rec)["error"]; got != "invalid_request" {
		t.Errorf("error = %v", got)
	}
}

func TestConfirmPaymentNotificationFailure(t *testing.T) {
	svc := &stubService{
		reservation: &models.Reservation{ID: "r1", PaymentConfirmed: true},
		err:         booking.ErrNotificationFailed,
	}
	r := newRouter()
	r.POST("/api/admin/reservations/:id/confirm", NewAdminHandler(svc, nil).ConfirmPayment)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/reservations/r1/confirm", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode(t, rec)
	if body["error"] != booking.ErrNotificationFailed.Code {
		t.Errorf("error = %v", body["error"])
	}
	res, ok := body["reservation"].(map[string]interface{})
	if !ok || res["paymentConfirmed"] != true {
		t.Errorf("reservation = %v", body["reservation"])
	}
}

func TestConfirmPaymentAlreadyConfirmed(t *testing.T) {
	svc := &stubService{err: booking.ErrAlreadyConfirmed}
	r := newRouter()
	r.POST("/api/admin/reservations/:id/confirm", NewAdminHandler(svc, nil).ConfirmPayment)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/reservations/r1/confirm", nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestDeleteReservation(t *testing.T) {
	r := newRouter()
	r.DELETE("/api/admin/reservations/:id", NewAdminHandler(&stubService{}, nil).DeleteReservation)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/reservations/r1", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	signer := utils.NewTokenSigner("secret")
	h := &AuthHandler{Signer: signer, AdminUID: "admin-uid", PasswordHash: string(hash), SessionTTL: time.Hour}

	r := newRouter()
	r.POST("/api/admin/login", h.Login)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"wrong"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"hunter2"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	token, _ := decode(t, rec)["token"].(string)
	uid, err := signer.ExtractSubject(token, utils.ScopeAdmin)
	if err != nil || uid != "admin-uid" {
		t.Errorf("token subject = %q, %v", uid, err)
	}
}

func TestLoginNotConfigured(t *testing.T) {
	h := &AuthHandler{Signer: utils.NewTokenSigner("secret"), AdminUID: "admin-uid"}
	r := newRouter()
	r.POST("/api/admin/login", h.Login)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"x"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
