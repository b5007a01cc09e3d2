package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/branchapp/branch/internal/identity"
	"github.com/rs/zerolog/log"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthHandler struct {
	Identity *identity.Service
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if creds.Username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	user, err := h.Identity.Register(creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, identity.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "Username already exists.")
			return
		}
		log.Error().Err(err).Msg("registration failed")
		writeError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}

	log.Info().Str("username", user.Username).Msg("user registered")
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully!",
		"userId":  user.ID,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if creds.Username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	user, token, err := h.Identity.Authenticate(creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		log.Error().Err(err).Msg("login failed")
		writeError(w, http.StatusInternalServerError, "Server error during login.")
		return
	}

	log.Info().Str("username", user.Username).Msg("user logged in")
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful!",
		"token":   token,
		"userId":  user.ID,
	})
}
