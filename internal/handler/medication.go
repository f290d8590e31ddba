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

type MedicationHandler struct {
	medications *store.MedicationStore
	profiles    *store.ProfileStore
	doctors     *store.DoctorStore
	hub         *ws.Hub
	logger      *slog.Logger
}

func NewMedicationHandler(medications *store.MedicationStore, profiles *store.ProfileStore, doctors *store.DoctorStore, hub *ws.Hub, logger *slog.Logger) *MedicationHandler {
	return &MedicationHandler{medications: medications, profiles: profiles, doctors: doctors, hub: hub, logger: logger}
}

// ListByProfile lists medications under one of the caller's profiles.
func (h *MedicationHandler) ListByProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	profile, ok := h.ownedProfile(w, userID, r.PathValue("id"))
	if !ok {
		return
	}

	meds, err := h.medications.ListByProfile(profile.ID)
	if err != nil {
		h.logger.Error("list medications", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch medications")
		return
	}
	if meds == nil {
		meds = []model.Medication{}
	}
	writeJSON(w, http.StatusOK, meds)
}

func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	profile, ok := h.ownedProfile(w, userID, r.PathValue("id"))
	if !ok {
		return
	}

	var req struct {
		Name       string  `json:"name"`
		Dosage     string  `json:"dosage"`
		Frequency  string  `json:"frequency"`
		Timing     string  `json:"timing"`
		FoodTiming string  `json:"food_timing"`
		Duration   string  `json:"duration"`
		StartDate  string  `json:"start_date"`
		EndDate    string  `json:"end_date"`
		Status     string  `json:"status"`
		DoctorID   *string `json:"doctor_id"`
		Notes      string  `json:"notes"`
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
	if req.Status != "" && !model.ValidMedicationStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "status must be active, completed, or paused")
		return
	}
	if !h.doctorAllowed(w, userID, req.DoctorID) {
		return
	}

	med, err := h.medications.Create(&model.Medication{
		ProfileID:  profile.ID,
		Name:       req.Name,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		Timing:     req.Timing,
		FoodTiming: req.FoodTiming,
		Duration:   req.Duration,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     req.Status,
		DoctorID:   req.DoctorID,
		Notes:      req.Notes,
	})
	if err != nil {
		h.logger.Error("create medication", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create medication")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("medication", "created", med.ID))
	writeJSON(w, http.StatusCreated, med)
}

func (h *MedicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	med, err := h.medications.GetForUser(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get medication", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch medication")
		return
	}
	if med == nil {
		writeError(w, http.StatusNotFound, "Medication not found")
		return
	}
	writeJSON(w, http.StatusOK, med)
}

func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	existing, err := h.medications.GetForUser(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get medication", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch medication")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Medication not found")
		return
	}

	var req struct {
		Name       *string `json:"name"`
		Dosage     *string `json:"dosage"`
		Frequency  *string `json:"frequency"`
		Timing     *string `json:"timing"`
		FoodTiming *string `json:"food_timing"`
		Duration   *string `json:"duration"`
		StartDate  *string `json:"start_date"`
		EndDate    *string `json:"end_date"`
		Status     *string `json:"status"`
		DoctorID   *string `json:"doctor_id"`
		Notes      *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		existing.Name = name
	}
	if req.Dosage != nil {
		existing.Dosage = *req.Dosage
	}
	if req.Frequency != nil {
		existing.Frequency = *req.Frequency
	}
	if req.Timing != nil {
		existing.Timing = *req.Timing
	}
	if req.FoodTiming != nil {
		existing.FoodTiming = *req.FoodTiming
	}
	if req.Duration != nil {
		existing.Duration = *req.Duration
	}
	if req.StartDate != nil {
		existing.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		existing.EndDate = *req.EndDate
	}
	if req.Status != nil {
		if !model.ValidMedicationStatus(*req.Status) {
			writeError(w, http.StatusBadRequest, "status must be active, completed, or paused")
			return
		}
		existing.Status = *req.Status
	}
	if req.DoctorID != nil {
		if *req.DoctorID == "" {
			existing.DoctorID = nil
		} else {
			if !h.doctorAllowed(w, userID, req.DoctorID) {
				return
			}
			existing.DoctorID = req.DoctorID
		}
	}
	if req.Notes != nil {
		existing.Notes = *req.Notes
	}

	med, err := h.medications.Update(existing)
	if err != nil {
		h.logger.Error("update medication", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update medication")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("medication", "updated", med.ID))
	writeJSON(w, http.StatusOK, med)
}

func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	existing, err := h.medications.GetForUser(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get medication", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch medication")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Medication not found")
		return
	}

	if err := h.medications.Delete(existing.ID); err != nil {
		h.logger.Error("delete medication", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete medication")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("medication", "deleted", existing.ID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Medication deleted successfully"})
}

// ownedProfile resolves the {id} path segment to one of the caller's
// profiles, writing the not-found response itself.
func (h *MedicationHandler) ownedProfile(w http.ResponseWriter, userID, profileID string) (*model.Profile, bool) {
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

// doctorAllowed rejects doctor references the caller does not own.
func (h *MedicationHandler) doctorAllowed(w http.ResponseWriter, userID string, doctorID *string) bool {
	if doctorID == nil || *doctorID == "" {
		return true
	}
	doctor, err := h.doctors.GetByID(userID, *doctorID)
	if err != nil {
		h.logger.Error("get doctor", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch doctor")
		return false
	}
	if doctor == nil {
		writeError(w, http.StatusBadRequest, "unknown doctor")
		return false
	}
	return true
}
