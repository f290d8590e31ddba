package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/RajSapale04/Meditrack/internal/auth"
	"github.com/RajSapale04/Meditrack/internal/model"
	"github.com/RajSapale04/Meditrack/internal/store"
	ws "github.com/RajSapale04/Meditrack/internal/websocket"
)

type DoctorHandler struct {
	doctors *store.DoctorStore
	hub     *ws.Hub
	logger  *slog.Logger
}

func NewDoctorHandler(doctors *store.DoctorStore, hub *ws.Hub, logger *slog.Logger) *DoctorHandler {
	return &DoctorHandler{doctors: doctors, hub: hub, logger: logger}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	doctors, err := h.doctors.List(userID)
	if err != nil {
		h.logger.Error("list doctors", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch doctors")
		return
	}
	if doctors == nil {
		doctors = []model.Doctor{}
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	doctor, err := h.doctors.GetByID(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get doctor", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch doctor")
		return
	}
	if doctor == nil {
		writeError(w, http.StatusNotFound, "Doctor not found")
		return
	}
	writeJSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req struct {
		Name      string `json:"name"`
		Specialty string `json:"specialty"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	doctor, err := h.doctors.Create(userID, req.Name, req.Specialty, req.Phone, req.Email)
	if err != nil {
		h.logger.Error("create doctor", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create doctor")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("doctor", "created", doctor.ID))
	writeJSON(w, http.StatusCreated, doctor)
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	existing, err := h.doctors.GetByID(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get doctor", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch doctor")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Doctor not found")
		return
	}

	var req struct {
		Name      *string `json:"name"`
		Specialty *string `json:"specialty"`
		Phone     *string `json:"phone"`
		Email     *string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	name := existing.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
	}
	specialty := existing.Specialty
	if req.Specialty != nil {
		specialty = *req.Specialty
	}
	phone := existing.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	email := existing.Email
	if req.Email != nil {
		email = *req.Email
	}

	doctor, err := h.doctors.Update(userID, existing.ID, name, specialty, phone, email)
	if err != nil {
		h.logger.Error("update doctor", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update doctor")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("doctor", "updated", doctor.ID))
	writeJSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	existing, err := h.doctors.GetByID(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get doctor", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch doctor")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Doctor not found")
		return
	}

	if err := h.doctors.Delete(userID, existing.ID); err != nil {
		h.logger.Error("delete doctor", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete doctor")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("doctor", "deleted", existing.ID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Doctor deleted successfully"})
}
