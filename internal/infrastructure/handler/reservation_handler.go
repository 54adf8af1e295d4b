package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/victoragudo/hotel-management-system/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

type ReservationHandler struct {
	makeReservationUseCase     *usecase.MakeReservationUseCase
	cancelReservationUseCase   *usecase.CancelReservationUseCase
	editReservationUseCase     *usecase.EditReservationUseCase
	viewReservationUseCase     *usecase.ViewReservationUseCase
	cancellationEligibilityUse *usecase.CheckCancellationEligibilityUseCase
	logger                     *slog.Logger
}

func NewReservationHandler(
	makeReservationUseCase *usecase.MakeReservationUseCase,
	cancelReservationUseCase *usecase.CancelReservationUseCase,
	editReservationUseCase *usecase.EditReservationUseCase,
	viewReservationUseCase *usecase.ViewReservationUseCase,
	cancellationEligibilityUse *usecase.CheckCancellationEligibilityUseCase,
	logger *slog.Logger,
) *ReservationHandler {
	return &ReservationHandler{
		makeReservationUseCase:     makeReservationUseCase,
		cancelReservationUseCase:   cancelReservationUseCase,
		editReservationUseCase:     editReservationUseCase,
		viewReservationUseCase:     viewReservationUseCase,
		cancellationEligibilityUse: cancellationEligibilityUse,
		logger:                     logger,
	}
}

func (h *ReservationHandler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/reservations", h.MakeReservation).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id}", h.ViewReservation).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}", h.EditReservation).Methods(http.MethodPut)
	api.HandleFunc("/reservations/{id}", h.CancelReservation).Methods(http.MethodDelete)
	api.HandleFunc("/reservations/{id}/cancellation", h.CheckCancellationEligibility).Methods(http.MethodGet)
}

type MakeReservationRequest struct {
	RoomID         int64  `json:"room_id" example:"1"`
	GuestID        int64  `json:"guest_id" example:"1"`
	CheckIn        string `json:"check_in" example:"2025-01-10"`
	CheckOut       string `json:"check_out" example:"2025-01-12"`
	NumberOfGuests int    `json:"number_of_guests" example:"2"`
}

type EditReservationRequest struct {
	CheckIn        *string `json:"check_in,omitempty" example:"2025-01-11"`
	CheckOut       *string `json:"check_out,omitempty" example:"2025-01-13"`
	RoomID         *int64  `json:"room_id,omitempty"`
	NumberOfGuests *int    `json:"number_of_guests,omitempty"`
}

type CancelReservationRequest struct {
	Notes string `json:"notes" example:"Flight cancelled"`
}

type EligibilityResponse struct {
	ReservationID int64 `json:"reservation_id"`
	Eligible      bool  `json:"eligible"`
}

// MakeReservation books a room
// @Summary Make a reservation
// @Description Book a room for a half-open date range. The total price is nights times the room price.
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservation body MakeReservationRequest true "Reservation to create"
// @Success 201 {object} APIResponse{data=reservation.Reservation} "Created reservation"
// @Failure 400 {object} APIResponse "Bad Request - Invalid data or room unavailable"
// @Failure 404 {object} APIResponse "Not Found - Room not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/reservations [post]
func (h *ReservationHandler) MakeReservation(w http.ResponseWriter, r *http.Request) {
	var req MakeReservationRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	res, err := h.makeReservationUseCase.Execute(r.Context(), usecase.MakeReservationCommand{
		RoomID:         req.RoomID,
		GuestID:        req.GuestID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: req.NumberOfGuests,
	})
	if err != nil {
		h.logger.Info("Reservation rejected", constants.RoomId, req.RoomID, "error", err)
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusCreated, res, nil)
}

// ViewReservation returns a reservation
// @Summary View a reservation
// @Description Get guest, room number, dates and total price of a live reservation
// @Tags reservations
// @Produce json
// @Param id path integer true "Reservation ID"
// @Success 200 {object} APIResponse{data=reservation.Details} "Reservation details"
// @Failure 400 {object} APIResponse "Bad Request - Invalid id"
// @Failure 404 {object} APIResponse "Not Found - Reservation not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/reservations/{id} [get]
func (h *ReservationHandler) ViewReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	details, err := h.viewReservationUseCase.Execute(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, details, nil)
}

// EditReservation changes dates, room or guest count
// @Summary Edit a reservation
// @Description Partially update a reservation. Omitted fields keep their values and the price is not recomputed.
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path integer true "Reservation ID"
// @Param changes body EditReservationRequest true "Fields to change"
// @Success 200 {object} APIResponse{data=reservation.Reservation} "Edited reservation"
// @Failure 400 {object} APIResponse "Bad Request - Invalid data"
// @Failure 404 {object} APIResponse "Not Found - Reservation not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/reservations/{id} [put]
func (h *ReservationHandler) EditReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	var req EditReservationRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	checkIn, err := parseOptionalDate(req.CheckIn)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}
	checkOut, err := parseOptionalDate(req.CheckOut)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	res, err := h.editReservationUseCase.Execute(r.Context(), usecase.EditReservationCommand{
		ReservationID: id,
		Update: reservation.Update{
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			RoomID:         req.RoomID,
			NumberOfGuests: req.NumberOfGuests,
		},
	})
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, res, nil)
}

// CancelReservation cancels a reservation
// @Summary Cancel a reservation
// @Description Soft-delete a reservation when the cancellation policy allows it
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path integer true "Reservation ID"
// @Param cancellation body CancelReservationRequest false "Optional cancellation notes"
// @Success 200 {object} APIResponse "Reservation cancelled successfully"
// @Failure 400 {object} APIResponse "Bad Request - Not eligible for cancellation"
// @Failure 404 {object} APIResponse "Not Found - Reservation not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	var req CancelReservationRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	message, err := h.cancelReservationUseCase.Execute(r.Context(), usecase.CancelReservationCommand{
		ReservationID: id,
		Notes:         req.Notes,
	})
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeMessageResponse(w, message)
}

// CheckCancellationEligibility reports whether a reservation may be cancelled
// @Summary Check cancellation eligibility
// @Description Evaluate the cancellation policy for a reservation without cancelling it
// @Tags reservations
// @Produce json
// @Param id path integer true "Reservation ID"
// @Success 200 {object} APIResponse{data=EligibilityResponse} "Reservation can be cancelled"
// @Failure 400 {object} APIResponse "Bad Request - Not eligible for cancellation"
// @Failure 404 {object} APIResponse "Not Found - Reservation not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/reservations/{id}/cancellation [get]
func (h *ReservationHandler) CheckCancellationEligibility(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	eligible, err := h.cancellationEligibilityUse.Execute(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, EligibilityResponse{ReservationID: id, Eligible: eligible}, nil)
}
