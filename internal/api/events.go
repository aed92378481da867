package api

import (
	"encoding/json"
	"net/http"

	"campus-hub/agora/internal/auth"
	"campus-hub/agora/internal/models/dtos"
	"campus-hub/agora/internal/models/entities"
)

// ListEventsHandler handles GET /api/v1/events
func ListEventsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := deps.Managers.Events.GetAll(r.Context())
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to list events")
			return
		}
		respondWithSuccess(w, http.StatusOK, &events)
	}
}

// GetEventHandler handles GET /api/v1/events/{id}
func GetEventHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid event id")
			return
		}

		event, err := deps.Managers.Events.GetByID(r.Context(), id)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to fetch event")
			return
		}
		if event == nil {
			respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		respondWithSuccess(w, http.StatusOK, event)
	}
}

// CreateEventHandler handles POST /api/v1/events
func CreateEventHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.CreateScheduledEventReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Type != entities.EventCampus && req.Type != entities.EventHackathon {
			respondWithError(w, http.StatusBadRequest, "type must be Campus or Hackathon")
			return
		}

		event, err := deps.Managers.Events.Create(r.Context(), &entities.ScheduledEvent{
			Name: req.Name,
			Date: req.Date,
			Type: req.Type,
		})
		if err != nil {
			respondWithError(w, statusForError(err), err.Error())
			return
		}
		respondWithSuccess(w, http.StatusCreated, event)
	}
}

// ListCommunityEventsHandler handles GET /api/v1/community-events
func ListCommunityEventsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := deps.Services.CommunityEvents.List(r.Context())
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to list community events")
			return
		}
		respondWithSuccess(w, http.StatusOK, &events)
	}
}

// CreateCommunityEventHandler handles POST /api/v1/community-events
func CreateCommunityEventHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing session")
			return
		}

		var req dtos.CreateCommunityEventReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Title == "" {
			respondWithError(w, http.StatusBadRequest, "title is required")
			return
		}

		event, err := deps.Services.CommunityEvents.Create(r.Context(), claims.AccountID, &entities.CommunityEvent{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			Link:        req.Link,
			Date:        req.Date,
		})
		if err != nil {
			respondWithError(w, statusForError(err), err.Error())
			return
		}
		respondWithSuccess(w, http.StatusCreated, event)
	}
}

// UpdateCommunityEventHandler handles PATCH /api/v1/community-events/{id}
func UpdateCommunityEventHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing session")
			return
		}

		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid event id")
			return
		}
		patch, err := decodePatch(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		event, err := deps.Services.CommunityEvents.Update(r.Context(), claims.AccountID, id, patch)
		if err != nil {
			respondWithError(w, statusForError(err), err.Error())
			return
		}
		if event == nil {
			respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		respondWithSuccess(w, http.StatusOK, event)
	}
}

// DeleteCommunityEventHandler handles DELETE /api/v1/community-events/{id}
func DeleteCommunityEventHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing session")
			return
		}

		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid event id")
			return
		}

		deleted, err := deps.Services.CommunityEvents.Delete(r.Context(), claims.AccountID, id)
		if err != nil {
			respondWithError(w, statusForError(err), err.Error())
			return
		}
		if !deleted {
			respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
