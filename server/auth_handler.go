package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cinegate/core/auth"
	"cinegate/logger"
	"cinegate/model"
	"cinegate/repository"
)

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username_chars"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password_strength"`
	Phone    string `json:"phone" validate:"required,min=10,max=15,digits"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// invalidCredentialsMsg deliberately does not distinguish an unknown email
// from a wrong password.
const invalidCredentialsMsg = "Invalid Username and Password"

type contextKey string

const claimsContextKey contextKey = "authClaims"

// RegisterHandler handles user registration requests.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if details := validateStruct(&req); details != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Validation failed",
			"details": details,
		})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("[Register] failed to hash password", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
	}

	userID, err := h.userRepo.CreateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			logger.Warn("[Register] username already exists", logger.String("username", req.Username))
			respondError(w, http.StatusConflict, "Username already exists")
		case errors.Is(err, repository.ErrDuplicateEmail):
			logger.Warn("[Register] email already exists", logger.String("email", req.Email))
			respondError(w, http.StatusConflict, "Email already exists")
		default:
			logger.Error("[Register] failed to create user", logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	// Re-fetch the created row so the response carries the generated id and
	// timestamps. PasswordHash is json:"-" and never serialized.
	created, err := h.userRepo.GetUserByID(userID)
	if err != nil || created == nil {
		logger.Error("[Register] failed to load created user",
			logger.Int64("userID", userID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.tokens.Generate(created.ID, created.Username, created.Email)
	if err != nil {
		logger.Error("[Register] failed to generate token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("[Register] user registered", logger.String("username", created.Username))

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    created,
		"token":   token,
	})
}

// LoginHandler handles user login requests.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if details := validateStruct(&req); details != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Validation failed",
			"details": details,
		})
		return
	}

	user, err := h.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		logger.Error("[Login] failed to look up user", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if user == nil {
		logger.Warn("[Login] unknown email", logger.String("email", req.Email))
		respondError(w, http.StatusUnauthorized, invalidCredentialsMsg)
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		logger.Warn("[Login] password mismatch", logger.String("email", req.Email))
		respondError(w, http.StatusUnauthorized, invalidCredentialsMsg)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username, user.Email)
	if err != nil {
		logger.Error("[Login] failed to generate token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("[Login] login successful", logger.String("username", user.Username))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// ProfileHandler returns the current user for a verified token. The user is
// re-fetched so a token that outlived its account yields 404.
func (h *APIHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		logger.Error("[Profile] failed to load user",
			logger.Int64("userID", claims.UserID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

// AuthMiddleware checks for a valid bearer token and stores its claims on
// the request context.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Access token required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := h.tokens.Parse(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// ClaimsFromContext extracts verified token claims from the request context.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("claims not found in context")
	}
	return claims, nil
}
