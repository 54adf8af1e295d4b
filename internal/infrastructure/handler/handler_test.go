package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victoragudo/hotel-management-system/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/adapter"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/eventbus"
	"github.com/victoragudo/hotel-management-system/pkg/clock"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
	"github.com/victoragudo/hotel-management-system/pkg/database"
	"github.com/victoragudo/hotel-management-system/pkg/entities"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router *mux.Router
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.GormOpen(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.ConfigurePool(db, database.PoolOptions{MaxOpenConnections: 1}))
	require.NoError(t, database.RunMigrations(db, entities.All()...))
	t.Cleanup(func() { _ = database.Close(db) })

	cache := adapter.NewLocalCacheAdapter(100, logger)
	t.Cleanup(func() { _ = cache.Close() })

	reservations := adapter.NewGormReservationRepository(db, logger)
	rooms := adapter.NewGormRoomRepository(db, logger)
	facilities := adapter.NewGormFacilityRepository(db, logger)
	assignments := adapter.NewGormRoomFacilityRepository(db, logger)
	clk := clock.Fixed{At: testNow}

	policy, err := reservation.NewCancellationPolicy(48*time.Hour, "intended")
	require.NoError(t, err)

	bus := eventbus.New(logger)
	bus.Subscribe(constants.EventRoomBooked, "mark_room_booked", usecase.NewMarkRoomBookedUseCase(rooms, logger))

	checkRoom := usecase.NewCheckRoomAvailabilityUseCase(reservations, logger)
	eligibility := usecase.NewCheckCancellationEligibilityUseCase(reservations, policy, clk, logger)

	router := mux.NewRouter()
	NewHealthHandler(map[string]Checker{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
		"cache":    cache.Ping,
	}, "test", logger).RegisterRoutes(router)

	api := router.PathPrefix(constants.BaseAPIPath).Subrouter()
	NewReservationHandler(
		usecase.NewMakeReservationUseCase(reservations, rooms, checkRoom, adapter.NewLocalLockAdapter(), bus, clk,
			usecase.LockOptions{TTL: time.Second}, logger),
		usecase.NewCancelReservationUseCase(reservations, eligibility, logger),
		usecase.NewEditReservationUseCase(reservations, logger),
		usecase.NewViewReservationUseCase(reservations, logger),
		eligibility,
		logger,
	).RegisterRoutes(api)
	NewRoomHandler(
		usecase.NewGetRoomsUseCase(rooms, cache, usecase.CacheTTL{}, logger),
		usecase.NewGetAvailableRoomsUseCase(rooms, cache, usecase.CacheTTL{}, logger),
		checkRoom,
		usecase.NewAddRoomUseCase(rooms, cache, logger),
		usecase.NewUpdateRoomUseCase(rooms, cache, logger),
		usecase.NewDeleteRoomUseCase(rooms, cache, logger),
		usecase.NewAssignRoomFacilityUseCase(rooms, facilities, assignments, cache, logger),
		logger,
	).RegisterRoutes(api)
	NewFacilityHandler(
		usecase.NewGetFacilitiesUseCase(facilities, logger),
		usecase.NewAddFacilityUseCase(facilities, cache, logger),
		usecase.NewUpdateFacilityUseCase(facilities, cache, logger),
		usecase.NewDeleteFacilityUseCase(facilities, cache, logger),
		logger,
	).RegisterRoutes(api)

	return &testServer{router: router, db: db}
}

type decoded struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Meta    json.RawMessage `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, decoded) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp decoded
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func (s *testServer) seedRoom(t *testing.T) int64 {
	t.Helper()
	status, resp := s.do(t, http.MethodPost, "/apis/rooms",
		`{"room_number":101,"type":"double","price_per_night":150,"capacity":2}`)
	require.Equal(t, http.StatusCreated, status, resp.Error)

	var created struct {
		ID   int64  `json:"id"`
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "Double", created.Type)
	return created.ID
}

func (s *testServer) seedGuest(t *testing.T) int64 {
	t.Helper()
	guest := &entities.GuestData{Username: "jdoe", FullName: "Jane Doe"}
	require.NoError(t, s.db.Create(guest).Error)
	return guest.ID
}

func TestReservationEndpoints(t *testing.T) {
	s := newTestServer(t)
	roomID := s.seedRoom(t)
	guestID := s.seedGuest(t)

	body := `{"room_id":` + itoa(roomID) + `,"guest_id":` + itoa(guestID) +
		`,"check_in":"2025-01-10","check_out":"2025-01-12","number_of_guests":2}`
	status, resp := s.do(t, http.MethodPost, "/apis/reservations", body)
	require.Equal(t, http.StatusCreated, status, resp.Error)

	var created reservation.Reservation
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, 300.0, created.TotalPrice)

	status, resp = s.do(t, http.MethodPost, "/apis/reservations", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, reservation.ErrRoomUnavailable.Error(), resp.Error)

	path := "/apis/reservations/" + itoa(created.ID)
	status, resp = s.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, status)
	var details reservation.Details
	require.NoError(t, json.Unmarshal(resp.Data, &details))
	assert.Equal(t, "jdoe", details.Guest)
	assert.Equal(t, 101, details.RoomNumber)
	assert.Equal(t, "300.00", details.TotalPrice)

	status, resp = s.do(t, http.MethodPut, path, `{"number_of_guests":1}`)
	require.Equal(t, http.StatusOK, status, resp.Error)

	status, resp = s.do(t, http.MethodGet, path+"/cancellation", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"reservation_id":`+itoa(created.ID)+`,"eligible":true}`, string(resp.Data))

	status, resp = s.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase.ReservationCancelledMessage, resp.Message)

	status, resp = s.do(t, http.MethodDelete, path, `{"notes":"again"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Reservation not found", resp.Error)
}

func TestReservationEndpoints_BadInput(t *testing.T) {
	s := newTestServer(t)
	roomID := s.seedRoom(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"malformed body", http.MethodPost, "/apis/reservations", `{"room_id":`, http.StatusBadRequest},
		{"bad date", http.MethodPost, "/apis/reservations",
			`{"room_id":` + itoa(roomID) + `,"guest_id":1,"check_in":"10/01/2025","check_out":"2025-01-12","number_of_guests":1}`,
			http.StatusBadRequest},
		{"inverted period", http.MethodPost, "/apis/reservations",
			`{"room_id":` + itoa(roomID) + `,"guest_id":1,"check_in":"2025-01-12","check_out":"2025-01-10","number_of_guests":1}`,
			http.StatusBadRequest},
		{"unknown room", http.MethodPost, "/apis/reservations",
			`{"room_id":999,"guest_id":1,"check_in":"2025-01-10","check_out":"2025-01-12","number_of_guests":1}`,
			http.StatusNotFound},
		{"non numeric id", http.MethodGet, "/apis/reservations/abc", "", http.StatusBadRequest},
		{"missing reservation", http.MethodGet, "/apis/reservations/42", "", http.StatusNotFound},
		{"edit missing reservation", http.MethodPut, "/apis/reservations/42", `{}`, http.StatusNotFound},
		{"non positive guests", http.MethodPut, "/apis/reservations/42", `{"number_of_guests":0}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestRoomEndpoints(t *testing.T) {
	s := newTestServer(t)
	roomID := s.seedRoom(t)
	roomPath := "/apis/rooms/" + itoa(roomID)

	status, resp := s.do(t, http.MethodPost, "/apis/facilities", `{"name":"Pool"}`)
	require.Equal(t, http.StatusCreated, status, resp.Error)
	var pool struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &pool))

	status, resp = s.do(t, http.MethodPost, roomPath+"/facilities", `{"facility_id":`+itoa(pool.ID)+`}`)
	require.Equal(t, http.StatusCreated, status, resp.Error)

	status, _ = s.do(t, http.MethodPost, roomPath+"/facilities", `{"facility_id":`+itoa(pool.ID)+`}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = s.do(t, http.MethodGet, "/apis/rooms?page=1&page_size=10", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"page":1,"page_size":10,"count":1}`, string(resp.Meta))
	assert.Contains(t, string(resp.Data), `"facilities":["Pool"]`)

	status, resp = s.do(t, http.MethodGet, "/apis/rooms/available?type=double&facility_ids="+itoa(pool.ID), "")
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.Contains(t, string(resp.Data), `"room_number":101`)

	status, _ = s.do(t, http.MethodGet, "/apis/rooms/available?type=castle", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodGet, "/apis/rooms/available?capacity=many", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = s.do(t, http.MethodGet, roomPath+"/availability?from=2025-01-10&to=2025-01-12", "")
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.Contains(t, string(resp.Data), `"available":true`)

	for _, query := range []string{"from=2025-01-12&to=2025-01-10", "from=2025-01-10&to=2025-01-10"} {
		status, resp = s.do(t, http.MethodGet, roomPath+"/availability?"+query, "")
		assert.Equal(t, http.StatusBadRequest, status, query)
		assert.Equal(t, "Check-in date must be before check-out date", resp.Error, query)
	}

	status, resp = s.do(t, http.MethodPut, roomPath, `{"price_per_night":175}`)
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.Contains(t, string(resp.Data), `"price_per_night":175`)

	status, _ = s.do(t, http.MethodPost, "/apis/rooms", `{"room_number":101,"type":"Single","price_per_night":10}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = s.do(t, http.MethodDelete, roomPath, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Room deleted successfully", resp.Message)

	status, _ = s.do(t, http.MethodDelete, roomPath, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFacilityEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, resp := s.do(t, http.MethodPost, "/apis/facilities", `{"name":"Gym"}`)
	require.Equal(t, http.StatusCreated, status, resp.Error)
	var gym struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &gym))

	status, resp = s.do(t, http.MethodPost, "/apis/facilities", `{"name":" gym "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Facility Name already Used", resp.Error)

	status, resp = s.do(t, http.MethodPut, "/apis/facilities/"+itoa(gym.ID), `{"name":"Fitness Centre"}`)
	require.Equal(t, http.StatusOK, status, resp.Error)

	status, resp = s.do(t, http.MethodGet, "/apis/facilities", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), "Fitness Centre")

	status, _ = s.do(t, http.MethodDelete, "/apis/facilities/"+itoa(gym.ID), "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodDelete, "/apis/facilities/"+itoa(gym.ID), "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	status, resp := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), `"database":"ok"`)

	failing := NewHealthHandler(map[string]Checker{
		"cache": func(context.Context) error { return errors.New("connection refused") },
	}, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	failing.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unhealthy"`)
}

func TestWriteErrorResponse_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/apis/rooms", nil)

	writeErrorResponse(rec, req, slog.New(slog.NewTextHandler(io.Discard, nil)), errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
}

func TestParseDate(t *testing.T) {
	for _, value := range []string{"2025-01-10", "2025-01-10T00:00:00Z", "2025-01-10T00:00:00"} {
		got, err := parseDate(value)
		require.NoError(t, err, value)
		assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), got)
	}

	_, err := parseDate("")
	assert.ErrorIs(t, err, errInvalidDate)
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
