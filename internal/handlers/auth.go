package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/shortify/internal/auth"
	"github.com/serroba/shortify/internal/mailer"
	"go.uber.org/zap"
)

// AuthHandler handles account and session operations.
type AuthHandler struct {
	users  auth.Users
	tokens *auth.TokenManager
	mail   mailer.Mailer
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	users auth.Users,
	tokens *auth.TokenManager,
	mail mailer.Mailer,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		mail:   mail,
		logger: logger,
	}
}

func (h *AuthHandler) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	hash, err := auth.HashPassword(req.Body.Password)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to create account")
	}

	token, err := auth.NewActionToken()
	if err != nil {
		h.logger.Error("failed to generate verification token", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create account")
	}

	now := time.Now().UTC()
	expiresAt := now.Add(auth.VerificationTTL)
	user := &auth.User{
		ID:                    uuid.New(),
		Email:                 req.Body.Email,
		Username:              req.Body.Username,
		PasswordHash:          hash,
		CreatedAt:             now,
		VerificationToken:     &token,
		VerificationExpiresAt: &expiresAt,
	}

	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil, huma.Error400BadRequest("email already registered")
		}

		h.logger.Error("failed to create user", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create account")
	}

	// Best-effort; account creation succeeds even if mail fails.
	if err := h.mail.SendVerification(ctx, user.Email, token); err != nil {
		h.logger.Error("failed to send verification email",
			zap.String("email", user.Email),
			zap.Error(err),
		)
	}

	return &SignupResponse{Body: userBody(user)}, nil
}

func (h *AuthHandler) VerifyEmail(ctx context.Context, req *VerifyEmailRequest) (*VerifyEmailResponse, error) {
	user, err := h.users.FindByVerificationToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, huma.Error400BadRequest("invalid or expired verification token")
		}

		h.logger.Error("failed to look up verification token", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to verify email")
	}

	if user.VerificationExpiresAt == nil || time.Now().UTC().After(*user.VerificationExpiresAt) {
		return nil, huma.Error400BadRequest("invalid or expired verification token")
	}

	user.Verified = true
	user.VerificationToken = nil
	user.VerificationExpiresAt = nil

	if err := h.users.Update(ctx, user); err != nil {
		h.logger.Error("failed to mark user verified", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to verify email")
	}

	resp := &VerifyEmailResponse{}
	resp.Body.Message = "email verified, you can now log in"

	return resp, nil
}

func (h *AuthHandler) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := h.users.FindByEmail(ctx, req.Body.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, huma.Error401Unauthorized("invalid email or password")
		}

		h.logger.Error("failed to look up user", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to log in")
	}

	if !user.Verified {
		return nil, huma.Error403Forbidden("please verify your email before logging in")
	}

	if !auth.CheckPassword(user.PasswordHash, req.Body.Password) {
		return nil, huma.Error401Unauthorized("invalid email or password")
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to log in")
	}

	resp := &LoginResponse{Body: userBody(user)}
	resp.Headers.SetCookie = http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}

	return resp, nil
}

func (h *AuthHandler) Logout(_ context.Context, _ *struct{}) (*LogoutResponse, error) {
	resp := &LogoutResponse{}
	resp.Body.Message = "logged out"
	resp.Headers.SetCookie = http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}

	return resp, nil
}

func (h *AuthHandler) Me(ctx context.Context, _ *struct{}) (*MeResponse, error) {
	caller := auth.CallerFromContext(ctx)
	if caller == nil {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	user, err := h.users.FindByID(ctx, *caller)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		h.logger.Error("failed to look up user", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to load account")
	}

	return &MeResponse{Body: userBody(user)}, nil
}

func (h *AuthHandler) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) (*ForgotPasswordResponse, error) {
	// The response never reveals whether the email is registered.
	resp := &ForgotPasswordResponse{}
	resp.Body.Message = "if an account with that email exists, a password reset link has been sent"

	user, err := h.users.FindByEmail(ctx, req.Body.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return resp, nil
		}

		h.logger.Error("failed to look up user", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to start password reset")
	}

	token, err := auth.NewActionToken()
	if err != nil {
		h.logger.Error("failed to generate reset token", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to start password reset")
	}

	expiresAt := time.Now().UTC().Add(auth.ResetTTL)
	user.ResetToken = &token
	user.ResetExpiresAt = &expiresAt

	if err := h.users.Update(ctx, user); err != nil {
		h.logger.Error("failed to store reset token", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to start password reset")
	}

	if err := h.mail.SendPasswordReset(ctx, user.Email, token); err != nil {
		h.logger.Error("failed to send password reset email",
			zap.String("email", user.Email),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to send password reset email")
	}

	return resp, nil
}

func (h *AuthHandler) ResetPassword(ctx context.Context, req *ResetPasswordRequest) (*ResetPasswordResponse, error) {
	user, err := h.users.FindByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, huma.Error400BadRequest("invalid or expired reset token")
		}

		h.logger.Error("failed to look up reset token", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to reset password")
	}

	if user.ResetExpiresAt == nil || time.Now().UTC().After(*user.ResetExpiresAt) {
		return nil, huma.Error400BadRequest("invalid or expired reset token")
	}

	hash, err := auth.HashPassword(req.Body.Password)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to reset password")
	}

	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetExpiresAt = nil

	if err := h.users.Update(ctx, user); err != nil {
		h.logger.Error("failed to update password", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to reset password")
	}

	resp := &ResetPasswordResponse{}
	resp.Body.Message = "password reset, you can now log in with your new password"

	return resp, nil
}

func userBody(user *auth.User) UserBody {
	return UserBody{
		ID:       user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
		Verified: user.Verified,
	}
}
