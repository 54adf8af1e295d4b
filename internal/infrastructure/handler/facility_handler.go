package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/victoragudo/hotel-management-system/internal/application/usecase"
)

type FacilityHandler struct {
	getFacilitiesUseCase  *usecase.GetFacilitiesUseCase
	addFacilityUseCase    *usecase.AddFacilityUseCase
	updateFacilityUseCase *usecase.UpdateFacilityUseCase
	deleteFacilityUseCase *usecase.DeleteFacilityUseCase
	logger                *slog.Logger
}

func NewFacilityHandler(
	getFacilitiesUseCase *usecase.GetFacilitiesUseCase,
	addFacilityUseCase *usecase.AddFacilityUseCase,
	updateFacilityUseCase *usecase.UpdateFacilityUseCase,
	deleteFacilityUseCase *usecase.DeleteFacilityUseCase,
	logger *slog.Logger,
) *FacilityHandler {
	return &FacilityHandler{
		getFacilitiesUseCase:  getFacilitiesUseCase,
		addFacilityUseCase:    addFacilityUseCase,
		updateFacilityUseCase: updateFacilityUseCase,
		deleteFacilityUseCase: deleteFacilityUseCase,
		logger:                logger,
	}
}

func (h *FacilityHandler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/facilities", h.GetFacilities).Methods(http.MethodGet)
	api.HandleFunc("/facilities", h.AddFacility).Methods(http.MethodPost)
	api.HandleFunc("/facilities/{id}", h.UpdateFacility).Methods(http.MethodPut)
	api.HandleFunc("/facilities/{id}", h.DeleteFacility).Methods(http.MethodDelete)
}

type FacilityRequest struct {
	Name string `json:"name" example:"Pool"`
}

// GetFacilities lists facilities
// @Summary List facilities
// @Tags facilities
// @Produce json
// @Success 200 {object} APIResponse{data=[]facility.Facility} "Facilities"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/facilities [get]
func (h *FacilityHandler) GetFacilities(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.getFacilitiesUseCase.Execute(r.Context())
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, facilities, nil)
}

// AddFacility creates a facility
// @Summary Add a facility
// @Description Facility names are unique, ignoring case and surrounding spaces
// @Tags facilities
// @Accept json
// @Produce json
// @Param facility body FacilityRequest true "Facility to create"
// @Success 201 {object} APIResponse{data=facility.Facility} "Created facility"
// @Failure 400 {object} APIResponse "Bad Request - Invalid or duplicate name"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/facilities [post]
func (h *FacilityHandler) AddFacility(w http.ResponseWriter, r *http.Request) {
	var req FacilityRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	f, err := h.addFacilityUseCase.Execute(r.Context(), req.Name)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusCreated, f, nil)
}

// UpdateFacility renames a facility
// @Summary Rename a facility
// @Tags facilities
// @Accept json
// @Produce json
// @Param id path integer true "Facility ID"
// @Param facility body FacilityRequest true "New name"
// @Success 200 {object} APIResponse{data=facility.Facility} "Updated facility"
// @Failure 400 {object} APIResponse "Bad Request - Invalid or duplicate name"
// @Failure 404 {object} APIResponse "Not Found - Facility not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/facilities/{id} [put]
func (h *FacilityHandler) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	var req FacilityRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	f, err := h.updateFacilityUseCase.Execute(r.Context(), id, req.Name)
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, f, nil)
}

// DeleteFacility soft-deletes a facility
// @Summary Delete a facility
// @Tags facilities
// @Produce json
// @Param id path integer true "Facility ID"
// @Success 200 {object} APIResponse "Facility deleted"
// @Failure 404 {object} APIResponse "Not Found - Facility not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /apis/facilities/{id} [delete]
func (h *FacilityHandler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	if err := h.deleteFacilityUseCase.Execute(r.Context(), id); err != nil {
		writeErrorResponse(w, r, h.logger, err)
		return
	}

	writeMessageResponse(w, "Facility deleted successfully")
}
