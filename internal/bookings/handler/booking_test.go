package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuedesk/internal/bookings/service"
	"venuedesk/pkg/auth"
	apperrors "venuedesk/pkg/errors"
	"venuedesk/pkg/logger"
	"venuedesk/pkg/middleware"
	"venuedesk/pkg/model"
)

type mockBookingService struct {
	createFn            func(ctx context.Context, booking *model.Booking) error
	createInquiryFn     func(ctx context.Context, booking *model.Booking) error
	cancelFn            func(ctx context.Context, id, accountID string) error
	listConfirmedFn     func(ctx context.Context, accountID string) ([]*model.BookingWithVenue, error)
	listInquiriesFn     func(ctx context.Context, accountID string) ([]*model.BookingWithVenue, error)
	isSlotFreeFn        func(ctx context.Context, venueID, partition string, from, to time.Time) (bool, error)
	checkSlotFn         func(ctx context.Context, venueID, partition string, eventDate time.Time) (bool, error)
	checkAvailabilityFn func(ctx context.Context, propertyID string, startDate, endDate time.Time) (*service.AvailabilityReport, error)
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	return m.createFn(ctx, booking)
}

func (m *mockBookingService) CreateInquiry(ctx context.Context, booking *model.Booking) error {
	return m.createInquiryFn(ctx, booking)
}

func (m *mockBookingService) Cancel(ctx context.Context, id, accountID string) error {
	return m.cancelFn(ctx, id, accountID)
}

func (m *mockBookingService) ListConfirmedForAccount(ctx context.Context, accountID string) ([]*model.BookingWithVenue, error) {
	return m.listConfirmedFn(ctx, accountID)
}

func (m *mockBookingService) ListInquiriesForAccount(ctx context.Context, accountID string) ([]*model.BookingWithVenue, error) {
	return m.listInquiriesFn(ctx, accountID)
}

func (m *mockBookingService) IsSlotFree(ctx context.Context, venueID, partition string, from, to time.Time) (bool, error) {
	return m.isSlotFreeFn(ctx, venueID, partition, from, to)
}

func (m *mockBookingService) CheckSlot(ctx context.Context, venueID, partition string, eventDate time.Time) (bool, error) {
	return m.checkSlotFn(ctx, venueID, partition, eventDate)
}

func (m *mockBookingService) CheckAvailability(ctx context.Context, propertyID string, startDate, endDate time.Time) (*service.AvailabilityReport, error) {
	return m.checkAvailabilityFn(ctx, propertyID, startDate, endDate)
}

func newTestRouter(svc *mockBookingService) (*httprouter.Router, *auth.TokenIssuer) {
	log := logger.New(logger.Config{Output: io.Discard})
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	router := httprouter.New()
	NewBookingHandler(svc, middleware.NewAuthenticator(issuer, log), log).RegisterRoutes(router)
	return router, issuer
}

func TestCreateRequiresToken(t *testing.T) {
	router, _ := newTestRouter(&mockBookingService{
		createFn: func(_ context.Context, _ *model.Booking) error {
			t.Fatal("unauthenticated request must not reach the service")
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateWithTokenReturnsStatusTrue(t *testing.T) {
	router, issuer := newTestRouter(&mockBookingService{
		createFn: func(_ context.Context, booking *model.Booking) error {
			assert.Equal(t, "Hall A", booking.Partition)
			return nil
		},
	})

	token, err := issuer.Issue("665f1f77bcf86cd799439022", "user")
	require.NoError(t, err)

	body := `{"venue":"665f1f77bcf86cd799439011","partition":"Hall A"}`
	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["status"])
}

func TestCreateConflictMapsTo409(t *testing.T) {
	router, issuer := newTestRouter(&mockBookingService{
		createFn: func(_ context.Context, _ *model.Booking) error {
			return apperrors.Conflict("slot taken")
		},
	})

	token, err := issuer.Issue("665f1f77bcf86cd799439022", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(`{}`))
	req.Header.Set("x-auth-token", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestInquiryIsPublic(t *testing.T) {
	created := false
	router, _ := newTestRouter(&mockBookingService{
		createInquiryFn: func(_ context.Context, _ *model.Booking) error {
			created = true
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/inquiry", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, created)
}

func TestCheckSlotAcceptsDateOnly(t *testing.T) {
	router, _ := newTestRouter(&mockBookingService{
		checkSlotFn: func(_ context.Context, venueID, partition string, eventDate time.Time) (bool, error) {
			assert.Equal(t, "665f1f77bcf86cd799439011", venueID)
			assert.Equal(t, "Hall A", partition)
			assert.Equal(t, time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), eventDate)
			return true, nil
		},
	})

	body := `{"venue_id":"665f1f77bcf86cd799439011","eventDate":"2026-09-20","partition":"Hall A"}`
	req := httptest.NewRequest(http.MethodPost, "/api/booking/specific", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["availability"])
}

func TestCheckSlotRejectsBadDate(t *testing.T) {
	router, _ := newTestRouter(&mockBookingService{
		checkSlotFn: func(_ context.Context, _, _ string, _ time.Time) (bool, error) {
			t.Fatal("unparseable date must not reach the service")
			return false, nil
		},
	})

	body := `{"venue_id":"665f1f77bcf86cd799439011","eventDate":"20/09/2026","partition":"Hall A"}`
	req := httptest.NewRequest(http.MethodPost, "/api/booking/specific", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckAvailabilityMissingDates(t *testing.T) {
	router, _ := newTestRouter(&mockBookingService{
		checkAvailabilityFn: func(_ context.Context, _ string, _, _ time.Time) (*service.AvailabilityReport, error) {
			t.Fatal("incomplete window must not reach the service")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/booking/check_availability", strings.NewReader(`{"startDate":"2026-07-10"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListConfirmedKeepsEmptyVenueDetail(t *testing.T) {
	router, issuer := newTestRouter(&mockBookingService{
		listConfirmedFn: func(_ context.Context, _ string) ([]*model.BookingWithVenue, error) {
			// venue no longer resolves: detail is empty, not an error
			return []*model.BookingWithVenue{
				{
					Booking:     model.Booking{ID: "665f1f77bcf86cd799439044", PersonName: "Ayesha Khan"},
					VenueDetail: []model.Property{},
				},
			}, nil
		},
	})

	token, err := issuer.Issue("665f1f77bcf86cd799439022", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/booking/665f1f77bcf86cd799439022", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	detail, ok := listed[0]["venue_detail"].([]any)
	require.True(t, ok, "venue_detail must serialize as an array")
	assert.Empty(t, detail)
}

func TestCancelPassesPrincipalAccount(t *testing.T) {
	router, issuer := newTestRouter(&mockBookingService{
		cancelFn: func(_ context.Context, id, accountID string) error {
			assert.Equal(t, "665f1f77bcf86cd799439044", id)
			assert.Equal(t, "665f1f77bcf86cd799439022", accountID)
			return nil
		},
	})

	token, err := issuer.Issue("665f1f77bcf86cd799439022", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/booking/cancel/665f1f77bcf86cd799439044", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListConfirmedUsesPathAccount(t *testing.T) {
	router, issuer := newTestRouter(&mockBookingService{
		listConfirmedFn: func(_ context.Context, accountID string) ([]*model.BookingWithVenue, error) {
			assert.Equal(t, "665f1f77bcf86cd799439022", accountID)
			return []*model.BookingWithVenue{}, nil
		},
	})

	token, err := issuer.Issue("665f1f77bcf86cd799439022", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/booking/665f1f77bcf86cd799439022", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
