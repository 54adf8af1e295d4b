package room

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/victoragudo/hotel-management-system/pkg/apperror"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

var (
	ErrNotFound                 = apperror.NotFound("Room not found")
	ErrNoRoomsFound             = apperror.NotFound("No rooms found")
	ErrNoRoomsMatch             = apperror.NotFound("No rooms match the given preferences.")
	ErrNumberTaken              = apperror.BadRequest("Room number already exists")
	ErrInvalidType              = apperror.BadRequest("Room type must be one of Single, Double, Suite, Deluxe")
	ErrInvalidTypeFilter        = apperror.BadRequest("Invalid room type filter.")
	ErrFacilityAlreadyAssigned  = apperror.BadRequest("Facility is already assigned to this room")
	ErrInvalidPricePerNight     = apperror.BadRequest("Price per night must be greater than 0")
	ErrInvalidRoomNumber        = apperror.BadRequest("Room number must be greater than 0")
	ErrInvalidCapacity          = apperror.BadRequest("Capacity must not be negative")
	ErrImageURLTooLong          = apperror.BadRequest("Image URL must not exceed 500 characters")
	ErrInvalidPriceRangeFilter  = apperror.BadRequest("Minimum price must not exceed maximum price")
	ErrInvalidRoomOrFacilityIDs = apperror.BadRequest("Room id and facility id must be greater than 0")
)

const MaxImageURLLength = 500

type Type string

const (
	TypeSingle Type = "Single"
	TypeDouble Type = "Double"
	TypeSuite  Type = "Suite"
	TypeDeluxe Type = "Deluxe"
)

var Types = []Type{TypeSingle, TypeDouble, TypeSuite, TypeDeluxe}

// ParseType is case-insensitive.
func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

type Room struct {
	ID            int64     `json:"id"`
	Number        int       `json:"room_number"`
	Name          string    `json:"name,omitempty"`
	Capacity      int       `json:"capacity"`
	ImageURL      string    `json:"image_url,omitempty"`
	Type          Type      `json:"type"`
	PricePerNight float64   `json:"price_per_night"`
	IsAvailable   bool      `json:"is_available"`
	Facilities    []string  `json:"facilities"`
	CreatedAt     time.Time `json:"created_at"`
}

// Update carries optional room fields. Nil fields keep stored values.
type Update struct {
	Number        *int
	Name          *string
	Capacity      *int
	ImageURL      *string
	Type          *Type
	PricePerNight *float64
}

func (u Update) IsEmpty() bool {
	return u.Number == nil && u.Name == nil && u.Capacity == nil &&
		u.ImageURL == nil && u.Type == nil && u.PricePerNight == nil
}

type Filter struct {
	Capacity      *int
	Type          *Type
	MinPrice      *float64
	MaxPrice      *float64
	FacilityIDs   []int64
	OnlyAvailable bool
}

// CacheKey is stable for equal filters regardless of facility id order.
func (f Filter) CacheKey() string {
	facilityKey := "none"
	if len(f.FacilityIDs) > 0 {
		ids := append([]int64(nil), f.FacilityIDs...)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.FormatInt(id, 10)
		}
		facilityKey = strings.Join(parts, "-")
	}

	var capacity, roomType, minPrice, maxPrice string
	if f.Capacity != nil {
		capacity = strconv.Itoa(*f.Capacity)
	}
	if f.Type != nil {
		roomType = string(*f.Type)
	}
	if f.MinPrice != nil {
		minPrice = strconv.FormatFloat(*f.MinPrice, 'f', -1, 64)
	}
	if f.MaxPrice != nil {
		maxPrice = strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64)
	}

	return fmt.Sprintf("%s_%s_%s_%s_%s_%s_%t",
		constants.AvailableRoomsCacheKeyPrefix, capacity, roomType, minPrice, maxPrice, facilityKey, f.OnlyAvailable)
}

func (f Filter) Validate() error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return ErrInvalidPriceRangeFilter
	}
	return nil
}

func ListCacheKey(page, pageSize int) string {
	return fmt.Sprintf("%s:%d:%d", constants.RoomsCacheKeyPrefix, page, pageSize)
}

// Assignment links a facility to a room.
type Assignment struct {
	ID         int64 `json:"id"`
	RoomID     int64 `json:"room_id"`
	FacilityID int64 `json:"facility_id"`
}
