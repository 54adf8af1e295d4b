package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/victoragudo/hotel-management-system/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

type RoomHandler struct {
	getRoomsUseCase          *usecase.GetRoomsUseCase
	getAvailableRoomsUseCase *usecase.GetAvailableRoomsUseCase
	checkAvailabilityUseCase *usecase.CheckRoomAvailabilityUseCase
	addRoomUseCase           *usecase.AddRoomUseCase
	updateRoomUseCase        *usecase.UpdateRoomUseCase
	deleteRoomUseCase        *usecase.DeleteRoomUseCase
	assignFacilityUseCase    *usecase.AssignRoomFacilityUseCase
	logger                   *slog.Logger
}

func NewRoomHandler(
	getRoomsUseCase *usecase.GetRoomsUseCase,
	getAvailableRoomsUseCase *usecase.GetAvailableRoomsUseCase,
	checkAvailabilityUseCase *usecase.CheckRoomAvailabilityUseCase,
	addRoomUseCase *usecase.AddRoomUseCase,
	updateRoomUseCase *usecase.UpdateRoomUseCase,
	deleteRoomUseCase *usecase.DeleteRoomUseCase,
	assignFacilityUseCase *usecase.AssignRoomFacilityUseCase,
	logger *slog.Logger,
) *RoomHandler {
	return &RoomHandler{
		getRoomsUseCase:          getRoomsUseCase,
		getAvailableRoomsUseCase: getAvailableRoomsUseCase,
		checkAvailabilityUseCase: checkAvailabilityUseCase,
		addRoomUseCase:           addRoomUseCase,
		updateRoomUseCase:        updateRoomUseCase,
		deleteRoomUseCase:        deleteRoomUseCase,
		assignFacilityUseCase:    assignFacilityUseCase,
		logger:                   logger,
	}
}

// RegisterRoutes mounts the room endpoints. /rooms/available must be
// registered before /rooms/{id}.
func (h *RoomHandler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/rooms", h.GetRooms).Methods(http.MethodGet)
	api.HandleFunc("/rooms", h.AddRoom).Methods(http.MethodPost)
	api.HandleFunc("/rooms/available", h.GetAvailableRooms).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}", h.UpdateRoom).Methods(http.MethodPut)
	api.HandleFunc("/rooms/{id}", h.DeleteRoom).Methods(http.MethodDelete)
	api.HandleFunc("/rooms/{id}/availability", h.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}/facilities", h.AssignFacility).Methods(http.MethodPost)
}

type PaginationMeta struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Count    int `json:"count"`
}

type AvailabilityResponse struct {
	RoomID    int64  `json:"room_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Available bool   `json:"available"`
}

type AssignFacilityRequest struct {
	FacilityID int64 `json:"facility_id" example:"1"`
}

// GetRooms lists live rooms
// @Summary List rooms
// @Description Get a page of rooms ordered by room number, with their facility names
// @Tags rooms
// @Produce json
// @Param page query integer false "Page number (default 1)"
// @Param page_size query integer false "Page size (default 20, max 100). pageSize is accepted too."
// @Success 200 {object} APIResponse{data=[]room.Room,meta=PaginationMeta} "Rooms"
// @Failure 400 {object} APIResponse "Bad Request - Invalid pagination"
// @Failure 404 {object} APIResponse "Not Found - No rooms found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/rooms [get]
func (h *RoomHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}
	pageKey := "page_size"
	if r.URL.Query().Get(pageKey) == "" {
		pageKey = "pageSize"
	}
	pageSize, err := queryInt(r, pageKey)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	p, ps := valueOr(page, usecase.DefaultPage), valueOr(pageSize, usecase.DefaultPageSize)
	rooms, err := h.getRoomsUseCase.Execute(r.Context(), p, ps)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, rooms, PaginationMeta{Page: p, PageSize: ps, Count: len(rooms)})
}

// GetAvailableRooms searches rooms by preferences
// @Summary Search available rooms
// @Description Filter rooms by capacity, type, price range and facilities. Results are cached for a short time.
// @Tags rooms
// @Produce json
// @Param capacity query integer false "Minimum capacity"
// @Param type query string false "Room type" Enums(Single, Double, Suite, Deluxe)
// @Param min_price query number false "Minimum price per night"
// @Param max_price query number false "Maximum price per night"
// @Param facility_ids query string false "Required facility ids, comma separated"
// @Param only_available query boolean false "Only rooms flagged available (default true)"
// @Success 200 {object} APIResponse{data=[]room.Room} "Matching rooms"
// @Failure 400 {object} APIResponse "Bad Request - Invalid filter"
// @Failure 404 {object} APIResponse "Not Found - No rooms match"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/rooms/available [get]
func (h *RoomHandler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	query, err := parseAvailableRoomsQuery(r)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	rooms, err := h.getAvailableRoomsUseCase.Execute(r.Context(), query)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, rooms, nil)
}

func parseAvailableRoomsQuery(r *http.Request) (usecase.AvailableRoomsQuery, error) {
	var (
		query usecase.AvailableRoomsQuery
		err   error
	)
	if query.Capacity, err = queryInt(r, "capacity"); err != nil {
		return query, err
	}
	if query.MinPrice, err = queryFloat(r, "min_price"); err != nil {
		return query, err
	}
	if query.MaxPrice, err = queryFloat(r, "max_price"); err != nil {
		return query, err
	}
	if query.FacilityIDs, err = queryIDs(r, "facility_ids"); err != nil {
		return query, err
	}
	if query.OnlyAvailable, err = queryBool(r, "only_available"); err != nil {
		return query, err
	}
	query.Type = r.URL.Query().Get("type")
	return query, nil
}

// CheckAvailability runs the overlap check for one room
// @Summary Check room availability
// @Description Report whether a room has no live reservation overlapping [from, to)
// @Tags rooms
// @Produce json
// @Param id path integer true "Room ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} APIResponse{data=AvailabilityResponse} "Availability"
// @Failure 400 {object} APIResponse "Bad Request - Invalid dates"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/rooms/{id}/availability [get]
func (h *RoomHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}
	if !from.Before(to) {
		writeErrorResponse(w, r, h.logger, reservation.ErrInvalidPeriod)
		return
	}

	available, err := h.checkAvailabilityUseCase.Execute(r.Context(), id, from, to)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, AvailabilityResponse{
		RoomID:    id,
		From:      from.Format(constants.DateFormat),
		To:        to.Format(constants.DateFormat),
		Available: available,
	}, nil)
}

// AddRoom creates a room
// @Summary Add a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param room body usecase.AddRoomCommand true "Room to create"
// @Success 201 {object} APIResponse{data=room.Room} "Created room"
// @Failure 400 {object} APIResponse "Bad Request - Invalid data or duplicate number"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/rooms [post]
func (h *RoomHandler) AddRoom(w http.ResponseWriter, r *http.Request) {
	var cmd usecase.AddRoomCommand
	if err := decodeBody(r, &cmd, false); err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	rm, err := h.addRoomUseCase.Execute(r.Context(), cmd)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusCreated, rm, nil)
}

// UpdateRoom partially updates a room
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path integer true "Room ID"
// @Param room body usecase.UpdateRoomCommand true "Fields to change"
// @Success 200 {object} APIResponse{data=room.Room} "Updated room"
// @Failure 400 {object} APIResponse "Bad Request - Invalid data"
// @Failure 404 {object} APIResponse "Not Found - Room not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	var cmd usecase.UpdateRoomCommand
	if err := decodeBody(r, &cmd, false); err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}
	cmd.RoomID = id

	rm, err := h.updateRoomUseCase.Execute(r.Context(), cmd)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, rm, nil)
}

// DeleteRoom soft-deletes a room
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Param id path integer true "Room ID"
// @Success 200 {object} APIResponse "Room deleted"
// @Failure 404 {object} APIResponse "Not Found - Room not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	if err := h.deleteRoomUseCase.Execute(r.Context(), id); err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeMessageResponse(w, "Room deleted successfully")
}

// AssignFacility links a facility to a room
// @Summary Assign a facility to a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path integer true "Room ID"
// @Param assignment body AssignFacilityRequest true "Facility to assign"
// @Success 201 {object} APIResponse{data=room.Assignment} "Created assignment"
// @Failure 400 {object} APIResponse "Bad Request - Already assigned"
// @Failure 404 {object} APIResponse "Not Found - Room or facility not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/rooms/{id}/facilities [post]
func (h *RoomHandler) AssignFacility(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	var req AssignFacilityRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	assignment, err := h.assignFacilityUseCase.Execute(r.Context(), id, req.FacilityID)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusCreated, assignment, nil)
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
