package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	// ChangePassword verifies the current password, stores the new hash
	// and revokes every refresh token the user holds.
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
}
