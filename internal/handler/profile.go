package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/RajSapale04/Meditrack/internal/auth"
	"github.com/RajSapale04/Meditrack/internal/model"
	"github.com/RajSapale04/Meditrack/internal/store"
	ws "github.com/RajSapale04/Meditrack/internal/websocket"
)

type ProfileHandler struct {
	profiles *store.ProfileStore
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewProfileHandler(profiles *store.ProfileStore, hub *ws.Hub, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, hub: hub, logger: logger}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	profiles, err := h.profiles.List(userID)
	if err != nil {
		h.logger.Error("list profiles", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch profiles")
		return
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	profile, err := h.profiles.GetByID(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
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
	if req.Age < 0 {
		writeError(w, http.StatusBadRequest, "age must not be negative")
		return
	}

	profile, err := h.profiles.Create(userID, req.Name, req.Age)
	if errors.Is(err, store.ErrProfileLimit) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Maximum %d profiles allowed", model.MaxProfilesPerUser))
		return
	}
	if err != nil {
		h.logger.Error("create profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("profile", "created", profile.ID))
	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	existing, err := h.profiles.GetByID(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}

	// Pointer fields distinguish "omitted" from zero values; omitted
	// fields keep their previous value.
	var req struct {
		Name *string `json:"name"`
		Age  *int    `json:"age"`
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
	age := existing.Age
	if req.Age != nil {
		if *req.Age < 0 {
			writeError(w, http.StatusBadRequest, "age must not be negative")
			return
		}
		age = *req.Age
	}

	profile, err := h.profiles.Update(userID, existing.ID, name, age)
	if err != nil {
		h.logger.Error("update profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("profile", "updated", profile.ID))
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	existing, err := h.profiles.GetByID(userID, r.PathValue("id"))
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}

	if err := h.profiles.Delete(userID, existing.ID); err != nil {
		h.logger.Error("delete profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("profile", "deleted", existing.ID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile deleted successfully"})
}
