package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shaurya0501/project-manager/logging"
	"github.com/Shaurya0501/project-manager/middleware"
	"github.com/Shaurya0501/project-manager/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Errorf("Failed to encode response: %v", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondError maps service errors to HTTP statuses. Not-found errors keep
// their message, validation messages are forwarded, anything unexpected is
// logged and collapsed to a generic server error.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrProjectNotFound),
		errors.Is(err, models.ErrTaskNotFound),
		errors.Is(err, models.ErrUserNotFound):
		respondMessage(w, http.StatusNotFound, capitalize(err.Error()))
	case errors.Is(err, models.ErrNotAuthorized):
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, models.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, models.ErrEmailTaken):
		respondMessage(w, http.StatusConflict, "User with this email already exists")
	case errors.Is(err, models.ErrValidation):
		respondMessage(w, http.StatusInternalServerError, err.Error())
	default:
		logging.Logger.Errorf("Unexpected error: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Server error")
	}
}

// requesterID resolves the authenticated user placed in the context by the
// JWT middleware.
func requesterID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathObjectID parses a hex id from a route variable.
func pathObjectID(w http.ResponseWriter, raw, label string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid "+label+" ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
