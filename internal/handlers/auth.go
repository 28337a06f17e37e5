package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/apex/log"

	"FOODLENS_BACK-END/internal/dto"
	"FOODLENS_BACK-END/internal/middleware"
	"FOODLENS_BACK-END/internal/models"
	"FOODLENS_BACK-END/internal/repository"
	"FOODLENS_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users  repository.UserStore
	hasher utils.PasswordHasher
	tokens *middleware.TokenIssuer
}

// NewAuthHandler creates a new AuthHandler instance.
// tokens may be nil, in which case no token is issued.
func NewAuthHandler(users repository.UserStore, hasher utils.PasswordHasher, tokens *middleware.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, hasher: hasher, tokens: tokens}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with name, email, and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 200 {object} dto.RegisterResponse "User created successfully"
// @Failure 400 {object} utils.ErrorResponse "Invalid request data or email already registered"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, utils.KindValidation, "Invalid request body", err.Error())
		return
	}

	// Validate required fields
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		utils.WriteErrorResponse(w, utils.KindValidation, "Missing required fields", "Name, email, and password are required")
		return
	}

	hashedPassword, err := h.hasher.Hash(req.Password)
	if err != nil {
		log.WithError(err).Error("failed to hash password")
		utils.WriteErrorResponse(w, utils.KindInternal, "Failed to hash password", nil)
		return
	}

	user, err := h.users.Create(r.Context(), req.Name, req.Email, hashedPassword)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			utils.WriteErrorResponse(w, utils.KindDuplicateEmail, "Email already registered", nil)
			return
		}
		log.WithError(err).Error("failed to create user")
		utils.WriteErrorResponse(w, utils.KindInternal, "Failed to create user", nil)
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	log.WithField("user_id", user.ID).Info("user registered")
	utils.WriteJSONResponse(w, http.StatusOK, dto.RegisterResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} utils.ErrorResponse "Invalid request data, unknown email or wrong password"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, utils.KindValidation, "Invalid request body", err.Error())
		return
	}

	// Validate required fields
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		utils.WriteErrorResponse(w, utils.KindValidation, "Missing required fields", "Email and password are required")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.WriteErrorResponse(w, utils.KindUserNotFound, "User not found", nil)
			return
		}
		log.WithError(err).Error("failed to load user")
		utils.WriteErrorResponse(w, utils.KindInternal, "Failed to load user", nil)
		return
	}

	if err := h.hasher.Compare(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			utils.WriteErrorResponse(w, utils.KindInvalidPass, "Invalid password", nil)
			return
		}
		log.WithError(err).WithField("user_id", user.ID).Error("failed to verify password")
		utils.WriteErrorResponse(w, utils.KindInternal, "Failed to verify password", nil)
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    toUserResponse(user),
		Token:   token,
	})
}

// GetProfile returns the current user's profile
// @Summary Get user profile
// @Description Get the authenticated user's profile. Only routed when token issuance is enabled.
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse "User profile"
// @Failure 400 {object} utils.ErrorResponse "User not found"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Router /profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, utils.ErrorResponse{Error: "Unauthorized", Message: err.Error()})
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.WriteErrorResponse(w, utils.KindUserNotFound, "User not found", nil)
			return
		}
		log.WithError(err).Error("failed to load profile")
		utils.WriteErrorResponse(w, utils.KindInternal, "Failed to load user", nil)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{
		Success: true,
		User:    toUserResponse(user),
	})
}

func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	if h.tokens == nil {
		return "", nil
	}
	token, err := h.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.WithError(err).Error("failed to generate token")
		return "", utils.NewAppError(utils.KindInternal, "Failed to generate token", nil).Wrap(err)
	}
	return token, nil
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}
}
