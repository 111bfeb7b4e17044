package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/b2bfusion/fusion-engine/internal/config"
	"github.com/b2bfusion/fusion-engine/internal/types"
)

// AuthHandler handles operator authentication requests.
type AuthHandler struct {
	operator   *config.OperatorConfig
	jwtService *JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(operator *config.OperatorConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		operator:   operator,
		jwtService: jwtService,
	}
}

// Login exchanges the operator password for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.operator.VerifyPassword(req.Password) {
		err := &ErrInvalidCredentials{}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	token, err := h.jwtService.GenerateToken()
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(types.LoginResponse{Token: token}); err != nil {
		log.Printf("failed to encode login response: %v", err)
	}
}
