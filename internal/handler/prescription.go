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

// PrescriptionHandler manages uploaded prescription records. Records are
// immutable: there is no update operation, only create and delete.
type PrescriptionHandler struct {
	prescriptions *store.PrescriptionStore
	profiles      *store.ProfileStore
	hub           *ws.Hub
	logger        *slog.Logger
}

func NewPrescriptionHandler(prescriptions *store.PrescriptionStore, profiles *store.ProfileStore, hub *ws.Hub, logger *slog.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptions: prescriptions, profiles: profiles, hub: hub, logger: logger}
}

func (h *PrescriptionHandler) ListByProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	profile, ok := h.ownedProfile(w, userID, r.PathValue("id"))
	if !ok {
		return
	}

	list, err := h.prescriptions.ListByProfile(profile.ID)
	if err != nil {
		h.logger.Error("list prescriptions", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch prescriptions")
		return
	}
	if list == nil {
		list = []model.Prescription{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	profile, ok := h.ownedProfile(w, userID, r.PathValue("id"))
	if !ok {
		return
	}

	var req struct {
		FileName   string `json:"file_name"`
		DoctorName string `json:"doctor_name"`
		IssuedOn   string `json:"issued_on"`
		Notes      string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.FileName = strings.TrimSpace(req.FileName)
	if req.FileName == "" {
		writeError(w, http.StatusBadRequest, "file_name is required")
		return
	}

	rx, err := h.prescriptions.Create(profile.ID, req.FileName, req.DoctorName, req.IssuedOn, req.Notes)
	if err != nil {
		h.logger.Error("create prescription", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create prescription")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("prescription", "created", rx.ID))
	writeJSON(w, http.StatusCreated, rx)
}

func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	rx, err := h.prescriptions.GetForUser(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get prescription", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch prescription")
		return
	}
	if rx == nil {
		writeError(w, http.StatusNotFound, "Prescription not found")
		return
	}
	writeJSON(w, http.StatusOK, rx)
}

func (h *PrescriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	rx, err := h.prescriptions.GetForUser(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get prescription", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch prescription")
		return
	}
	if rx == nil {
		writeError(w, http.StatusNotFound, "Prescription not found")
		return
	}

	if err := h.prescriptions.Delete(rx.ID); err != nil {
		h.logger.Error("delete prescription", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete prescription")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("prescription", "deleted", rx.ID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Prescription deleted successfully"})
}

func (h *PrescriptionHandler) ownedProfile(w http.ResponseWriter, userID, profileID string) (*model.Profile, bool) {
	profile, err := h.profiles.GetByID(userID, profileID)
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return nil, false
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return nil, false
	}
	return profile, true
}
