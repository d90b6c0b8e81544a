package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"arena-relay/internal/store"
	"arena-relay/pkg/auth"
)

type AuthAPI struct {
	Users store.Users
	JWT   *auth.JWT
}

type credentialsReq struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}
type tokenResp struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

// Register handles signup and returns a JWT the client can hand to /ws
func (a *AuthAPI) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	u, err := a.Users.Register(r.Context(), req.User, req.Pass)
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			http.Error(w, "username already in use", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Issue token for 24hrs
	tok, _ := a.JWT.Sign(u.Username, 24*time.Hour)
	writeJSON(w, tokenResp{Token: tok, User: u.Username})
}

// Login verifies credentials and returns a JWT
func (a *AuthAPI) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	u, err := a.Users.Authenticate(r.Context(), req.User, req.Pass)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	// Issue token (24h)
	tok, _ := a.JWT.Sign(u.Username, 24*time.Hour)
	writeJSON(w, tokenResp{Token: tok, User: u.Username})
}

// Me returns the authenticated username
func (a *AuthAPI) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.Username(r.Context())
	if user == "anon" || user == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{"user": user})
}

// send JSON with proper headers
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
