package constants

const (
	BaseAPIPath = "/apis"

	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02T15:04:05"
)

// Event and message type names shared by the event bus and the outbound feed
const (
	EventRoomBooked = "reservation.room_booked"
)

// Log attribute keys
const (
	ReservationId = "reservation_id"
	RoomId        = "room_id"
	FacilityId    = "facility_id"
	RequestId     = "request_id"
)

const (
	RoomsCacheKeyPrefix          = "rooms"
	AvailableRoomsCacheKeyPrefix = "available_rooms"
)
