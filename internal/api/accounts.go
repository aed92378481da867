package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"campus-hub/agora/internal/auth"
	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/models/dtos"
	"campus-hub/agora/internal/models/entities"

	"github.com/go-chi/chi/v5"
)

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func decodePatch(r *http.Request) (cache.Patch, error) {
	var patch cache.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		return nil, err
	}
	return patch, nil
}

// ListAccountsHandler handles GET /api/v1/users
func ListAccountsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := deps.Managers.Accounts.GetAll(r.Context())
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to list accounts")
			return
		}
		respondWithSuccess(w, http.StatusOK, &accounts)
	}
}

// GetAccountHandler handles GET /api/v1/users/{id}
func GetAccountHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid account id")
			return
		}

		account, err := deps.Managers.Accounts.GetByID(r.Context(), id)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to fetch account")
			return
		}
		if account == nil {
			respondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		respondWithSuccess(w, http.StatusOK, account)
	}
}

// GetAccountByLoginHandler handles GET /api/v1/users/login/{login}.
// A login unknown locally falls through to the profile sync engine.
func GetAccountByLoginHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		login := chi.URLParam(r, "login")

		account, err := deps.Managers.Accounts.GetByKey(r.Context(), login)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to fetch account")
			return
		}
		if account == nil {
			account, err = deps.Services.Sync.FetchProfile(r.Context(), login)
			if err != nil {
				respondWithError(w, statusForError(err), "Failed to sync profile")
				return
			}
		}
		respondWithSuccess(w, http.StatusOK, account)
	}
}

// SyncAccountHandler handles POST /api/v1/users/login/{login}/sync
func SyncAccountHandler(deps *Dependencies) http.HandlerFunc {
	type syncResult struct {
		Account  *entities.Account  `json:"account"`
		Projects []entities.Project `json:"projects"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		login := chi.URLParam(r, "login")

		account, projects, err := deps.Services.Sync.SyncProfile(r.Context(), login)
		if err != nil {
			respondWithError(w, statusForError(err), "Profile sync failed")
			return
		}
		respondWithSuccess(w, http.StatusOK, &syncResult{Account: account, Projects: projects})
	}
}

// CreateAccountHandler handles POST /api/v1/users
func CreateAccountHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.CreateAccountReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Login == "" {
			respondWithError(w, http.StatusBadRequest, "login is required")
			return
		}

		account, err := deps.Managers.Accounts.Create(r.Context(), &entities.Account{
			Login:       req.Login,
			DisplayName: req.DisplayName,
			Level:       req.Level,
			CampusName:  req.CampusName,
			Location:    req.Location,
			Favorites:   req.Favorites,
		})
		if err != nil {
			respondWithError(w, statusForError(err), err.Error())
			return
		}
		respondWithSuccess(w, http.StatusCreated, account)
	}
}

// UpdateAccountHandler handles PATCH /api/v1/users/{id}
func UpdateAccountHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid account id")
			return
		}
		patch, err := decodePatch(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		account, err := deps.Managers.Accounts.Update(r.Context(), id, patch)
		if err != nil {
			respondWithError(w, statusForError(err), err.Error())
			return
		}
		if account == nil {
			respondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		respondWithSuccess(w, http.StatusOK, account)
	}
}

// DeleteAccountHandler handles DELETE /api/v1/users/{id}
func DeleteAccountHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid account id")
			return
		}

		deleted, err := deps.Managers.Accounts.Delete(r.Context(), id)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to delete account")
			return
		}
		if !deleted {
			respondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CreateSessionHandler handles POST /api/v1/auth/session: it issues a
// session token for a locally known login.
func CreateSessionHandler(deps *Dependencies) http.HandlerFunc {
	type sessionReq struct {
		Login string `json:"login"`
	}
	type sessionResp struct {
		Token string `json:"token"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" {
			respondWithError(w, http.StatusBadRequest, "login is required")
			return
		}

		account, err := deps.Managers.Accounts.GetByKey(r.Context(), req.Login)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to fetch account")
			return
		}
		if account == nil {
			respondWithError(w, http.StatusNotFound, "Account not found")
			return
		}

		token, err := auth.IssueToken(account, 24*time.Hour)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to issue session")
			return
		}
		respondWithSuccess(w, http.StatusOK, &sessionResp{Token: token})
	}
}
