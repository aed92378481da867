package api

import (
	"encoding/json"
	"net/http"

	"campus-hub/agora/internal/auth"
	"campus-hub/agora/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// ListMessagesHandler handles GET /api/v1/messages
func ListMessagesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := deps.Managers.Messages.GetAll(r.Context())
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to list messages")
			return
		}
		respondWithSuccess(w, http.StatusOK, &messages)
	}
}

// GetMessageHandler handles GET /api/v1/messages/{id}
func GetMessageHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid message id")
			return
		}

		message, err := deps.Managers.Messages.GetByID(r.Context(), id)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to fetch message")
			return
		}
		if message == nil {
			respondWithError(w, http.StatusNotFound, "Message not found")
			return
		}
		respondWithSuccess(w, http.StatusOK, message)
	}
}

// ListMessagesForUserHandler handles GET /api/v1/users/login/{login}/messages
func ListMessagesForUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := deps.Services.Messages.ForUser(r.Context(), chi.URLParam(r, "login"))
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to list messages")
			return
		}
		respondWithSuccess(w, http.StatusOK, &messages)
	}
}

// SendMessageHandler handles POST /api/v1/messages. The sender is the
// authenticated session, never the request body.
func SendMessageHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing session")
			return
		}

		var req dtos.SendMessageReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		message, err := deps.Services.Messages.Send(r.Context(), claims.Login, req.To, req.Text)
		if err != nil {
			respondWithError(w, statusForError(err), err.Error())
			return
		}
		respondWithSuccess(w, http.StatusCreated, message)
	}
}

// DeleteMessageHandler handles DELETE /api/v1/messages/{id}. Only the
// sender of a message may delete it.
func DeleteMessageHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing session")
			return
		}

		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid message id")
			return
		}

		message, err := deps.Managers.Messages.GetByID(r.Context(), id)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to fetch message")
			return
		}
		if message == nil {
			respondWithError(w, http.StatusNotFound, "Message not found")
			return
		}
		if message.FromLogin != claims.Login {
			respondWithError(w, http.StatusForbidden, "Only the sender can delete a message")
			return
		}

		deleted, err := deps.Managers.Messages.Delete(r.Context(), id)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to delete message")
			return
		}
		if !deleted {
			respondWithError(w, http.StatusNotFound, "Message not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
