package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	membershipapp "github.com/greenclub/backend/internal/application/membership"
	"github.com/greenclub/backend/internal/infrastructure/auth"
	"github.com/greenclub/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *membershipapp.AuthService
	jwtService  *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *membershipapp.AuthService, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents a logout request
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
	Everywhere   bool   `json:"everywhere"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	TokenType             string    `json:"token_type"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// MemberInfoResponse represents the authenticated member
type MemberInfoResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Phone       string     `json:"phone,omitempty"`
	Status      string     `json:"status"`
	RoleCodes   []string   `json:"role_codes"`
	Permissions []string   `json:"permissions"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	TokenResponse
	Member MemberInfoResponse `json:"member"`
}

func toMemberInfoResponse(info membershipapp.MemberInfo) MemberInfoResponse {
	return MemberInfoResponse{
		ID:          info.ID.String(),
		Email:       info.Email,
		DisplayName: info.DisplayName,
		Phone:       info.Phone,
		Status:      string(info.Status),
		RoleCodes:   info.RoleCodes,
		Permissions: info.Permissions,
		LastLoginAt: info.LastLoginAt,
	}
}

// Login authenticates a member and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), membershipapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		TokenResponse: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			TokenType:             result.TokenType,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
		},
		Member: toMemberInfoResponse(result.Member),
	})
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), membershipapp.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TokenResponse{
		AccessToken:           result.AccessToken,
		RefreshToken:          result.RefreshToken,
		TokenType:             result.TokenType,
		AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
	})
}

// Logout revokes the current session's tokens
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	memberID, err := claims.GetMemberUUID()
	if err != nil {
		h.BadRequest(c, "Invalid member ID in token")
		return
	}

	var req LogoutRequest
	// Body is optional for logout
	_ = c.ShouldBindJSON(&req)

	input := membershipapp.LogoutInput{
		MemberID:   memberID,
		AccessJTI:  claims.ID,
		Everywhere: req.Everywhere,
		IP:         c.ClientIP(),
	}
	if claims.ExpiresAt != nil {
		input.AccessExpiresAt = claims.ExpiresAt.Time
	}

	// Revoke the refresh token too when the client hands it over
	if req.RefreshToken != "" {
		if refreshClaims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken); err == nil {
			input.RefreshJTI = refreshClaims.ID
			if refreshClaims.ExpiresAt != nil {
				input.RefreshExpiresAt = refreshClaims.ExpiresAt.Time
			}
		}
	}

	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out successfully"})
}

// Me returns the currently authenticated member
func (h *AuthHandler) Me(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.authService.GetCurrentMember(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMemberInfoResponse(*info))
}

// ChangePassword changes the current member's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	err = h.authService.ChangePassword(c.Request.Context(), membershipapp.ChangePasswordInput{
		MemberID:    memberID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
		IP:          c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password changed. Existing sessions have been invalidated."})
}
