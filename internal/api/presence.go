package api

import (
	"net/http"

	"campus-hub/agora/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// GetActivePeersHandler handles GET /api/v1/campuses/{campus}/peers. The
// campus segment is either a numeric id or a campus name.
func GetActivePeersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campusID, err := deps.Services.Sync.ResolveCampusID(r.Context(), chi.URLParam(r, "campus"))
		if err != nil {
			respondWithError(w, statusForError(err), "Unknown campus")
			return
		}

		snapshot, err := deps.Services.Presence.GetActivePeers(r.Context(), campusID)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to fetch active peers")
			return
		}
		respondWithSuccess(w, http.StatusOK, snapshot)
	}
}

// OnlineUsersHandler handles GET /api/v1/users/online
func OnlineUsersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logins := deps.Services.Presence.OnlineUsers(r.Context())
		respondWithSuccess(w, http.StatusOK, &dtos.OnlineUsersResponse{
			Count:  len(logins),
			Logins: logins,
		})
	}
}
