package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Shaurya0501/project-manager/logging"
	"github.com/Shaurya0501/project-manager/models"
	"github.com/Shaurya0501/project-manager/services"
	"github.com/Shaurya0501/project-manager/utils"
)

type AuthHandler struct {
	UserService *services.UserService
	TokenTTL    time.Duration
}

func NewAuthHandler(userService *services.UserService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{UserService: userService, TokenTTL: tokenTTL}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, h.TokenTTL)
	if err != nil {
		respondError(w, err)
		return
	}

	logging.Logger.Infof("User registered: %s", user.Email)
	respondJSON(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.UserService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, h.TokenTTL)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Me returns the profile of the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
