package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victoragudo/hotel-management-system/internal/domain/event"
	"github.com/victoragudo/hotel-management-system/internal/domain/facility"
	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/adapter"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/eventbus"
	"github.com/victoragudo/hotel-management-system/pkg/apperror"
	"github.com/victoragudo/hotel-management-system/pkg/clock"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
	"github.com/victoragudo/hotel-management-system/pkg/database"
	"github.com/victoragudo/hotel-management-system/pkg/entities"
)

// hotel wires the use cases over SQLite, the in-process cache, lock and event bus.
type hotel struct {
	rooms        *adapter.GormRoomRepository
	bus          *eventbus.Bus
	addRoom      *AddRoomUseCase
	deleteRoom   *DeleteRoomUseCase
	getRooms     *GetRoomsUseCase
	available    *GetAvailableRoomsUseCase
	addFacility  *AddFacilityUseCase
	delFacility  *DeleteFacilityUseCase
	assign       *AssignRoomFacilityUseCase
	checkRoom    *CheckRoomAvailabilityUseCase
	book         *MakeReservationUseCase
	cancel       *CancelReservationUseCase
	view         *ViewReservationUseCase
	releaseLater func(at time.Time) *ReleaseVacatedRoomsUseCase
}

func newHotel(t *testing.T) *hotel {
	t.Helper()
	logger := testLogger()

	db, err := database.GormOpen(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.ConfigurePool(db, database.PoolOptions{MaxOpenConnections: 1}))
	require.NoError(t, database.RunMigrations(db, entities.All()...))
	t.Cleanup(func() { _ = database.Close(db) })

	cache := adapter.NewLocalCacheAdapter(1000, logger)
	t.Cleanup(func() { _ = cache.Close() })

	reservations := adapter.NewGormReservationRepository(db, logger)
	rooms := adapter.NewGormRoomRepository(db, logger)
	facilities := adapter.NewGormFacilityRepository(db, logger)
	assignments := adapter.NewGormRoomFacilityRepository(db, logger)
	clk := clock.Fixed{At: testNow}

	bus := eventbus.New(logger)
	bus.Subscribe(constants.EventRoomBooked, "mark_room_booked", NewMarkRoomBookedUseCase(rooms, logger))

	checkRoom := NewCheckRoomAvailabilityUseCase(reservations, logger)
	eligibility := NewCheckCancellationEligibilityUseCase(reservations, intendedPolicy(), clk, logger)

	return &hotel{
		rooms:       rooms,
		bus:         bus,
		addRoom:     NewAddRoomUseCase(rooms, cache, logger),
		deleteRoom:  NewDeleteRoomUseCase(rooms, cache, logger),
		getRooms:    NewGetRoomsUseCase(rooms, cache, CacheTTL{}, logger),
		available:   NewGetAvailableRoomsUseCase(rooms, cache, CacheTTL{}, logger),
		addFacility: NewAddFacilityUseCase(facilities, cache, logger),
		delFacility: NewDeleteFacilityUseCase(facilities, cache, logger),
		assign:      NewAssignRoomFacilityUseCase(rooms, facilities, assignments, cache, logger),
		checkRoom:   checkRoom,
		book: NewMakeReservationUseCase(reservations, rooms, checkRoom, adapter.NewLocalLockAdapter(), bus, clk,
			LockOptions{TTL: time.Second, Wait: 100 * time.Millisecond}, logger),
		cancel: NewCancelReservationUseCase(reservations, eligibility, logger),
		view:   NewViewReservationUseCase(reservations, logger),
		releaseLater: func(at time.Time) *ReleaseVacatedRoomsUseCase {
			return NewReleaseVacatedRoomsUseCase(rooms, clock.Fixed{At: at}, logger)
		},
	}
}

func (h *hotel) room101(t *testing.T) *room.Room {
	t.Helper()
	rm, err := h.addRoom.Execute(context.Background(), AddRoomCommand{Number: 101, Type: "double", PricePerNight: 150, Capacity: 2})
	require.NoError(t, err)
	return rm
}

func (h *hotel) bookRoom(t *testing.T, roomID int64, checkIn, checkOut time.Time) *reservation.Reservation {
	t.Helper()
	res, err := h.book.Execute(context.Background(), MakeReservationCommand{
		RoomID:         roomID,
		GuestID:        1,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: 2,
	})
	require.NoError(t, err)
	return res
}

func TestScenario_Room101OverlappingStay(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)
	rm := h.room101(t)
	assert.Equal(t, room.TypeDouble, rm.Type)

	res := h.bookRoom(t, rm.ID, date(2025, 1, 10), date(2025, 1, 12))
	assert.Equal(t, 2*150.0, res.TotalPrice)

	available, err := h.checkRoom.Execute(ctx, rm.ID, date(2025, 1, 11), date(2025, 1, 13))
	require.NoError(t, err)
	assert.False(t, available)

	available, err = h.checkRoom.Execute(ctx, rm.ID, date(2025, 1, 12), date(2025, 1, 14))
	require.NoError(t, err)
	assert.True(t, available, "checking in on the previous check-out day is fine")

	_, err = h.book.Execute(ctx, MakeReservationCommand{
		RoomID: rm.ID, GuestID: 2, CheckIn: date(2025, 1, 11), CheckOut: date(2025, 1, 13), NumberOfGuests: 1,
	})
	assert.ErrorIs(t, err, reservation.ErrRoomUnavailable)

	flagged, err := h.rooms.FindByID(ctx, rm.ID)
	require.NoError(t, err)
	assert.False(t, flagged.IsAvailable, "booking subscriber flags the room")

	details, err := h.view.Execute(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 101, details.RoomNumber)
	assert.Equal(t, "2025-01-10", details.CheckIn)
	assert.Equal(t, "300.00", details.TotalPrice)
}

func TestScenario_CancelTwice(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)
	rm := h.room101(t)
	res := h.bookRoom(t, rm.ID, date(2025, 1, 10), date(2025, 1, 12))

	msg, err := h.cancel.Execute(ctx, CancelReservationCommand{ReservationID: res.ID, Notes: "change of plans"})
	require.NoError(t, err)
	assert.Equal(t, ReservationCancelledMessage, msg)

	_, err = h.cancel.Execute(ctx, CancelReservationCommand{ReservationID: res.ID})
	assert.ErrorIs(t, err, reservation.ErrNotFound)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = h.view.Execute(ctx, res.ID)
	assert.ErrorIs(t, err, reservation.ErrNotFound)

	available, err := h.checkRoom.Execute(ctx, rm.ID, date(2025, 1, 10), date(2025, 1, 12))
	require.NoError(t, err)
	assert.True(t, available, "cancelled stays free the room")
}

func TestScenario_DisjointStaysBothBook(t *testing.T) {
	h := newHotel(t)
	rm := h.room101(t)

	h.bookRoom(t, rm.ID, date(2025, 1, 10), date(2025, 1, 12))
	second := h.bookRoom(t, rm.ID, date(2025, 1, 12), date(2025, 1, 15))
	assert.Equal(t, 3*150.0, second.TotalPrice)
}

func TestScenario_SubscriberPanicDoesNotFailBooking(t *testing.T) {
	h := newHotel(t)
	rm := h.room101(t)

	h.bus.Subscribe(constants.EventRoomBooked, "broken", event.HandlerFunc(func(context.Context, event.Event) error {
		panic("subscriber bug")
	}))

	res := h.bookRoom(t, rm.ID, date(2025, 1, 10), date(2025, 1, 12))
	assert.NotZero(t, res.ID)
}

func TestScenario_ReleaseVacatedRooms(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)
	rm := h.room101(t)
	h.bookRoom(t, rm.ID, date(2025, 1, 10), date(2025, 1, 12))

	released, err := h.releaseLater(date(2025, 1, 11)).Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, released, "guest has not checked out yet")

	released, err = h.releaseLater(date(2025, 1, 13)).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	got, err := h.rooms.FindByID(ctx, rm.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAvailable)
}

func TestScenario_DuplicateFacilityName(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)

	pool, err := h.addFacility.Execute(ctx, "Pool")
	require.NoError(t, err)
	assert.NotZero(t, pool.ID)

	_, err = h.addFacility.Execute(ctx, "Pool")
	assert.ErrorIs(t, err, facility.ErrNameAlreadyTaken)

	_, err = h.addFacility.Execute(ctx, "  pool ")
	assert.ErrorIs(t, err, facility.ErrNameAlreadyTaken)
}

func TestScenario_DeletedRoomNumberAndFacilityNameAreReusable(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)

	rm, err := h.addRoom.Execute(ctx, AddRoomCommand{Number: 101, Type: "Double", PricePerNight: 150})
	require.NoError(t, err)
	require.NoError(t, h.deleteRoom.Execute(ctx, rm.ID))

	again, err := h.addRoom.Execute(ctx, AddRoomCommand{Number: 101, Type: "Suite", PricePerNight: 300})
	require.NoError(t, err)
	assert.NotEqual(t, rm.ID, again.ID)

	pool, err := h.addFacility.Execute(ctx, "Pool")
	require.NoError(t, err)
	require.NoError(t, h.delFacility.Execute(ctx, pool.ID))

	_, err = h.addFacility.Execute(ctx, "Pool")
	require.NoError(t, err)
}

// countingFacilityRepository reports every name as taken and counts writes.
type countingFacilityRepository struct {
	facility.Repository
	creates int
}

func (c *countingFacilityRepository) ExistsByName(context.Context, string, int64) (bool, error) {
	return true, nil
}

func (c *countingFacilityRepository) Create(context.Context, *facility.Facility) error {
	c.creates++
	return nil
}

func TestAddFacilityUseCase_DuplicateNeverReachesStore(t *testing.T) {
	repo := &countingFacilityRepository{}
	uc := NewAddFacilityUseCase(repo, adapter.NewLocalCacheAdapter(10, testLogger()), testLogger())

	_, err := uc.Execute(context.Background(), "Pool")

	assert.ErrorIs(t, err, facility.ErrNameAlreadyTaken)
	assert.Equal(t, "Facility Name already Used", err.Error())
	assert.Zero(t, repo.creates)
}

func TestScenario_AssignFacility(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)
	rm := h.room101(t)
	pool, err := h.addFacility.Execute(ctx, "Pool")
	require.NoError(t, err)

	assignment, err := h.assign.Execute(ctx, rm.ID, pool.ID)
	require.NoError(t, err)
	assert.NotZero(t, assignment.ID)

	_, err = h.assign.Execute(ctx, rm.ID, pool.ID)
	assert.ErrorIs(t, err, room.ErrFacilityAlreadyAssigned)

	_, err = h.assign.Execute(ctx, rm.ID, 999)
	assert.ErrorIs(t, err, facility.ErrNotFound)

	_, err = h.assign.Execute(ctx, 999, pool.ID)
	assert.ErrorIs(t, err, room.ErrNotFound)

	_, err = h.assign.Execute(ctx, 0, pool.ID)
	assert.ErrorIs(t, err, room.ErrInvalidRoomOrFacilityIDs)

	rooms, err := h.getRooms.Execute(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, []string{"Pool"}, rooms[0].Facilities)
}

func TestScenario_RoomListingCache(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)

	_, err := h.getRooms.Execute(ctx, 0, 0)
	assert.ErrorIs(t, err, room.ErrNoRoomsFound)

	rm := h.room101(t)

	rooms, err := h.getRooms.Execute(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	_, err = h.addRoom.Execute(ctx, AddRoomCommand{Number: 102, Type: "Suite", PricePerNight: 400})
	require.NoError(t, err)

	rooms, err = h.getRooms.Execute(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, rooms, 2, "room writes invalidate cached pages")

	listed, err := h.available.Execute(ctx, AvailableRoomsQuery{})
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	h.bookRoom(t, rm.ID, date(2025, 1, 10), date(2025, 1, 12))

	listed, err = h.available.Execute(ctx, AvailableRoomsQuery{})
	require.NoError(t, err)
	assert.Len(t, listed, 2, "bookings do not invalidate listings before the TTL expires")

	onlyAvailable := false
	listed, err = h.available.Execute(ctx, AvailableRoomsQuery{OnlyAvailable: &onlyAvailable, Type: "suite"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 102, listed[0].Number)

	_, err = h.available.Execute(ctx, AvailableRoomsQuery{Type: "Penthouse"})
	assert.ErrorIs(t, err, room.ErrInvalidTypeFilter)

	_, err = h.getRooms.Execute(ctx, 1, MaxPageSize+1)
	assert.ErrorIs(t, err, errInvalidPageSize)
}

func TestScenario_AddRoomValidation(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t)
	h.room101(t)

	tests := []struct {
		name    string
		cmd     AddRoomCommand
		wantErr error
	}{
		{"duplicate number", AddRoomCommand{Number: 101, Type: "Single", PricePerNight: 10}, room.ErrNumberTaken},
		{"unknown type", AddRoomCommand{Number: 5, Type: "Castle", PricePerNight: 10}, room.ErrInvalidType},
		{"free room", AddRoomCommand{Number: 5, Type: "Single"}, room.ErrInvalidPricePerNight},
		{"zero number", AddRoomCommand{Type: "Single", PricePerNight: 10}, room.ErrInvalidRoomNumber},
		{"negative capacity", AddRoomCommand{Number: 5, Type: "Single", PricePerNight: 10, Capacity: -1}, room.ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.addRoom.Execute(ctx, tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
