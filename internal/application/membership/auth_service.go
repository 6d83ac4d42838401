// Package membership contains application services for member accounts,
// authentication and role administration.
package membership

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/audit"
	"github.com/greenclub/backend/internal/domain/membership"
	"github.com/greenclub/backend/internal/domain/shared"
	"github.com/greenclub/backend/internal/infrastructure/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	memberRepo membership.MemberRepository
	roleRepo   membership.RoleRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	auditor    *auditapp.Service
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	memberRepo membership.MemberRepository,
	roleRepo membership.RoleRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	auditor *auditapp.Service,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		memberRepo: memberRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		auditor:    auditor,
		logger:     logger,
	}
}

// Login authenticates a member and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	member, err := s.memberRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Login attempt for unknown email", zap.String("email", input.Email))
		s.auditor.RecordAnonymous(ctx, audit.ActionMemberLoginFail, "member", "unknown email "+input.Email, input.IP)
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if member.IsLoginLocked() {
		s.logger.Warn("Login attempt for locked account", zap.String("member_id", member.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
	}

	switch member.Status {
	case membership.MemberStatusPending:
		return nil, shared.NewDomainError("ACCOUNT_PENDING", "Account is pending activation")
	case membership.MemberStatusDeactivated:
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !member.VerifyPassword(input.Password) {
		member.RecordFailedLogin()
		if err := s.memberRepo.Update(ctx, member); err != nil {
			s.logger.Error("Failed to update member after login failure", zap.Error(err))
		}
		s.auditor.RecordAnonymous(ctx, audit.ActionMemberLoginFail, "member", "bad password for "+member.Email, input.IP)

		if member.IsLoginLocked() {
			s.logger.Warn("Account locked after repeated failures",
				zap.String("member_id", member.ID.String()))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if err := s.memberRepo.LoadMemberRoles(ctx, member); err != nil {
		s.logger.Error("Failed to load member roles", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load member roles")
	}

	roleCodes, permissions, err := s.collectRolesAndPermissions(ctx, member.RoleIDs)
	if err != nil {
		s.logger.Error("Failed to collect member permissions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load member permissions")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		MemberID:    member.ID,
		DisplayName: member.DisplayName,
		RoleCodes:   roleCodes,
		Permissions: permissions,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	member.RecordLogin(input.IP)
	if err := s.memberRepo.Update(ctx, member); err != nil {
		// The member is authenticated; losing the login timestamp is tolerable
		s.logger.Error("Failed to update member after login", zap.Error(err))
	}

	s.auditor.Record(ctx, member.ID, audit.ActionMemberLogin, "member", member.ID, "", input.IP)
	s.logger.Info("Member logged in",
		zap.String("member_id", member.ID.String()),
		zap.String("email", member.Email))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Member:                s.memberInfo(member, roleCodes, permissions),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	if err := s.checkBlacklist(ctx, claims); err != nil {
		return nil, err
	}

	memberID, err := claims.GetMemberUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid member ID in token")
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		s.logger.Warn("Member not found during token refresh", zap.String("member_id", memberID.String()))
		return nil, shared.NewDomainError("MEMBER_NOT_FOUND", "Member not found")
	}

	if !member.IsActive() {
		s.logger.Warn("Token refresh for inactive member", zap.String("member_id", memberID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	if err := s.memberRepo.LoadMemberRoles(ctx, member); err != nil {
		s.logger.Error("Failed to load member roles during refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load member roles")
	}

	roleCodes, permissions, err := s.collectRolesAndPermissions(ctx, member.RoleIDs)
	if err != nil {
		s.logger.Error("Failed to collect permissions during refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load member permissions")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		MemberID:    member.ID,
		DisplayName: member.DisplayName,
		RoleCodes:   roleCodes,
		Permissions: permissions,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair during refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	// The old refresh token stays usable until it expires unless it is
	// blacklisted here
	if claims.ID != "" {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Error("Failed to blacklist rotated refresh token", zap.Error(err))
		}
	}

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout invalidates the presented tokens, or every outstanding token
// for the member when Everywhere is set
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.Everywhere {
		ttl := s.jwtService.GetRefreshTokenExpiration()
		if err := s.blacklist.AddMemberTokensToBlacklist(ctx, input.MemberID.String(), ttl); err != nil {
			s.logger.Error("Failed to invalidate member tokens", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
		}
	} else {
		if input.AccessJTI != "" {
			if err := s.blacklist.AddToBlacklist(ctx, input.AccessJTI, time.Until(input.AccessExpiresAt)); err != nil {
				s.logger.Error("Failed to blacklist access token", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
			}
		}
		if input.RefreshJTI != "" {
			if err := s.blacklist.AddToBlacklist(ctx, input.RefreshJTI, time.Until(input.RefreshExpiresAt)); err != nil {
				s.logger.Error("Failed to blacklist refresh token", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
			}
		}
	}

	s.auditor.Record(ctx, input.MemberID, audit.ActionMemberLogout, "member", input.MemberID, "", input.IP)
	s.logger.Info("Member logged out",
		zap.String("member_id", input.MemberID.String()),
		zap.Bool("everywhere", input.Everywhere))
	return nil
}

// GetCurrentMember returns the calling member's profile with the
// roles and permissions currently assigned
func (s *AuthService) GetCurrentMember(ctx context.Context, memberID uuid.UUID) (*MemberInfo, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, shared.NewDomainError("MEMBER_NOT_FOUND", "Member not found")
	}

	if err := s.memberRepo.LoadMemberRoles(ctx, member); err != nil {
		s.logger.Error("Failed to load member roles", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load member roles")
	}

	roleCodes, permissions, err := s.collectRolesAndPermissions(ctx, member.RoleIDs)
	if err != nil {
		s.logger.Error("Failed to collect permissions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load member permissions")
	}

	info := s.memberInfo(member, roleCodes, permissions)
	return &info, nil
}

// ChangePassword changes a member's password and invalidates their
// outstanding tokens
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	member, err := s.memberRepo.FindByID(ctx, input.MemberID)
	if err != nil {
		return shared.NewDomainError("MEMBER_NOT_FOUND", "Member not found")
	}

	if err := member.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		s.logger.Error("Failed to update member after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	// Force re-login everywhere with the new credentials
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddMemberTokensToBlacklist(ctx, member.ID.String(), ttl); err != nil {
		s.logger.Error("Failed to invalidate tokens after password change", zap.Error(err))
	}

	s.auditor.Record(ctx, member.ID, audit.ActionPasswordChange, "member", member.ID, "", input.IP)
	s.logger.Info("Member password changed", zap.String("member_id", member.ID.String()))
	return nil
}

// CheckToken verifies that an access token's claims are still live:
// neither individually blacklisted nor invalidated member-wide
func (s *AuthService) CheckToken(ctx context.Context, claims *auth.Claims) error {
	return s.checkBlacklist(ctx, claims)
}

func (s *AuthService) checkBlacklist(ctx context.Context, claims *auth.Claims) error {
	if claims.ID != "" {
		blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("Blacklist check failed", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify token")
		}
		if blacklisted {
			return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
		}
	}

	invalidated, err := s.blacklist.IsMemberTokenInvalidated(ctx, claims.MemberID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Member invalidation check failed", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify token")
	}
	if invalidated {
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}
	return nil
}

func (s *AuthService) memberInfo(member *membership.Member, roleCodes, permissions []string) MemberInfo {
	return MemberInfo{
		ID:          member.ID,
		Email:       member.Email,
		DisplayName: member.DisplayName,
		Phone:       member.Phone,
		Status:      member.Status,
		RoleCodes:   roleCodes,
		Permissions: permissions,
		LastLoginAt: member.LastLoginAt,
	}
}

// collectRolesAndPermissions resolves role codes and the union of
// permission codes for the given role IDs. Disabled roles contribute
// nothing.
func (s *AuthService) collectRolesAndPermissions(ctx context.Context, roleIDs []uuid.UUID) ([]string, []string, error) {
	if len(roleIDs) == 0 {
		return []string{}, []string{}, nil
	}

	roles, err := s.roleRepo.FindByIDs(ctx, roleIDs)
	if err != nil {
		return nil, nil, err
	}

	roleCodes := make([]string, 0, len(roles))
	permSet := make(map[string]struct{})
	for _, role := range roles {
		if !role.Enabled {
			continue
		}
		roleCodes = append(roleCodes, role.Code)
		for _, code := range role.PermissionCodes() {
			permSet[code] = struct{}{}
		}
	}

	permissions := make([]string, 0, len(permSet))
	for code := range permSet {
		permissions = append(permissions, code)
	}
	return roleCodes, permissions, nil
}
