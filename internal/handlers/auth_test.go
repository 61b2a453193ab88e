package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/shortify/internal/auth"
	"github.com/serroba/shortify/internal/handlers"
	"github.com/serroba/shortify/internal/mailer"
	"github.com/serroba/shortify/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingMailer struct {
	verifications []string
	resets        []string
	tokens        []string
	err           error
}

func (m *recordingMailer) SendVerification(_ context.Context, email, token string) error {
	m.verifications = append(m.verifications, email)
	m.tokens = append(m.tokens, token)

	return m.err
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.resets = append(m.resets, email)
	m.tokens = append(m.tokens, token)

	return m.err
}

func newTestAuthHandler(users auth.Users, mail mailer.Mailer) *handlers.AuthHandler {
	return handlers.NewAuthHandler(
		users,
		auth.NewTokenManager([]byte("test-secret"), time.Hour),
		mail,
		zap.NewNop(),
	)
}

func signupReq(email string) *handlers.SignupRequest {
	req := &handlers.SignupRequest{}
	req.Body.Email = email
	req.Body.Username = "tester"
	req.Body.Password = "hunter22"

	return req
}

// signupVerified creates an account and completes email verification.
func signupVerified(t *testing.T, handler *handlers.AuthHandler, users auth.Users, email string) uuid.UUID {
	t.Helper()

	resp, err := handler.Signup(context.Background(), signupReq(email))
	require.NoError(t, err)

	stored, err := users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationToken)

	_, err = handler.VerifyEmail(context.Background(), &handlers.VerifyEmailRequest{
		Token: *stored.VerificationToken,
	})
	require.NoError(t, err)

	userID, err := uuid.Parse(resp.Body.ID)
	require.NoError(t, err)

	return userID
}

func TestSignup(t *testing.T) {
	t.Run("creates an unverified account and sends a verification mail", func(t *testing.T) {
		users := store.NewMemoryUsers()
		mail := &recordingMailer{}
		handler := newTestAuthHandler(users, mail)

		resp, err := handler.Signup(context.Background(), signupReq("a@example.com"))

		require.NoError(t, err)
		assert.Equal(t, "a@example.com", resp.Body.Email)
		assert.NotEmpty(t, resp.Body.ID)
		assert.False(t, resp.Body.Verified)
		assert.Equal(t, []string{"a@example.com"}, mail.verifications)

		stored, err := users.FindByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "hunter22", stored.PasswordHash)
		assert.False(t, stored.Verified)
		require.NotNil(t, stored.VerificationToken)
		assert.Equal(t, []string{*stored.VerificationToken}, mail.tokens)
		require.NotNil(t, stored.VerificationExpiresAt)
		assert.WithinDuration(t,
			time.Now().UTC().Add(auth.VerificationTTL), *stored.VerificationExpiresAt, time.Minute)
	})

	t.Run("duplicate email is 400", func(t *testing.T) {
		users := store.NewMemoryUsers()
		handler := newTestAuthHandler(users, &recordingMailer{})

		_, err := handler.Signup(context.Background(), signupReq("a@example.com"))
		require.NoError(t, err)

		_, err = handler.Signup(context.Background(), signupReq("a@example.com"))

		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("mail failure does not fail the signup", func(t *testing.T) {
		users := store.NewMemoryUsers()
		mail := &recordingMailer{err: errors.New("smtp down")}
		handler := newTestAuthHandler(users, mail)

		resp, err := handler.Signup(context.Background(), signupReq("a@example.com"))

		require.NoError(t, err)
		assert.Equal(t, "a@example.com", resp.Body.Email)
	})
}

func TestVerifyEmail(t *testing.T) {
	t.Run("marks the account verified and clears the token", func(t *testing.T) {
		users := store.NewMemoryUsers()
		handler := newTestAuthHandler(users, &recordingMailer{})

		_, err := handler.Signup(context.Background(), signupReq("a@example.com"))
		require.NoError(t, err)

		stored, err := users.FindByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		require.NotNil(t, stored.VerificationToken)

		resp, err := handler.VerifyEmail(context.Background(), &handlers.VerifyEmailRequest{
			Token: *stored.VerificationToken,
		})

		require.NoError(t, err)
		assert.Contains(t, resp.Body.Message, "verified")

		verified, err := users.FindByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		assert.True(t, verified.Verified)
		assert.Nil(t, verified.VerificationToken)
		assert.Nil(t, verified.VerificationExpiresAt)
	})

	t.Run("unknown token is 400", func(t *testing.T) {
		handler := newTestAuthHandler(store.NewMemoryUsers(), &recordingMailer{})

		_, err := handler.VerifyEmail(context.Background(), &handlers.VerifyEmailRequest{
			Token: "no-such-token",
		})

		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("expired token is 400", func(t *testing.T) {
		users := store.NewMemoryUsers()
		handler := newTestAuthHandler(users, &recordingMailer{})

		_, err := handler.Signup(context.Background(), signupReq("a@example.com"))
		require.NoError(t, err)

		stored, err := users.FindByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)

		past := time.Now().UTC().Add(-time.Second)
		stored.VerificationExpiresAt = &past
		require.NoError(t, users.Update(context.Background(), stored))

		_, err = handler.VerifyEmail(context.Background(), &handlers.VerifyEmailRequest{
			Token: *stored.VerificationToken,
		})

		assertStatus(t, err, http.StatusBadRequest)
	})
}

func TestLogin(t *testing.T) {
	setup := func(t *testing.T) (*handlers.AuthHandler, auth.Users) {
		t.Helper()

		users := store.NewMemoryUsers()
		handler := newTestAuthHandler(users, &recordingMailer{})
		signupVerified(t, handler, users, "a@example.com")

		return handler, users
	}

	t.Run("valid credentials set the session cookie", func(t *testing.T) {
		handler, _ := setup(t)

		req := &handlers.LoginRequest{}
		req.Body.Email = "a@example.com"
		req.Body.Password = "hunter22"

		resp, err := handler.Login(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "a@example.com", resp.Body.Email)
		assert.True(t, resp.Body.Verified)
		assert.Equal(t, auth.SessionCookie, resp.Headers.SetCookie.Name)
		assert.NotEmpty(t, resp.Headers.SetCookie.Value)
		assert.True(t, resp.Headers.SetCookie.HttpOnly)
	})

	t.Run("unverified account is 403", func(t *testing.T) {
		users := store.NewMemoryUsers()
		handler := newTestAuthHandler(users, &recordingMailer{})

		_, err := handler.Signup(context.Background(), signupReq("new@example.com"))
		require.NoError(t, err)

		req := &handlers.LoginRequest{}
		req.Body.Email = "new@example.com"
		req.Body.Password = "hunter22"

		_, err = handler.Login(context.Background(), req)

		assertStatus(t, err, http.StatusForbidden)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		handler, _ := setup(t)

		req := &handlers.LoginRequest{}
		req.Body.Email = "a@example.com"
		req.Body.Password = "wrong"

		_, err := handler.Login(context.Background(), req)

		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("unknown email is 401", func(t *testing.T) {
		handler, _ := setup(t)

		req := &handlers.LoginRequest{}
		req.Body.Email = "nobody@example.com"
		req.Body.Password = "hunter22"

		_, err := handler.Login(context.Background(), req)

		assertStatus(t, err, http.StatusUnauthorized)
	})
}

func TestForgotPassword(t *testing.T) {
	anonymousMessage := "if an account with that email exists, a password reset link has been sent"

	t.Run("stores a reset token and mails it", func(t *testing.T) {
		users := store.NewMemoryUsers()
		mail := &recordingMailer{}
		handler := newTestAuthHandler(users, mail)
		signupVerified(t, handler, users, "a@example.com")

		req := &handlers.ForgotPasswordRequest{}
		req.Body.Email = "a@example.com"

		resp, err := handler.ForgotPassword(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, anonymousMessage, resp.Body.Message)
		assert.Equal(t, []string{"a@example.com"}, mail.resets)

		stored, err := users.FindByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		require.NotNil(t, stored.ResetToken)
		require.NotNil(t, stored.ResetExpiresAt)
		assert.WithinDuration(t,
			time.Now().UTC().Add(auth.ResetTTL), *stored.ResetExpiresAt, time.Minute)
	})

	t.Run("unknown email gets the same response and no mail", func(t *testing.T) {
		mail := &recordingMailer{}
		handler := newTestAuthHandler(store.NewMemoryUsers(), mail)

		req := &handlers.ForgotPasswordRequest{}
		req.Body.Email = "nobody@example.com"

		resp, err := handler.ForgotPassword(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, anonymousMessage, resp.Body.Message)
		assert.Empty(t, mail.resets)
	})

	t.Run("mail failure is 500", func(t *testing.T) {
		users := store.NewMemoryUsers()
		handler := newTestAuthHandler(users, &recordingMailer{})
		signupVerified(t, handler, users, "a@example.com")

		failing := &recordingMailer{err: errors.New("smtp down")}
		handler = newTestAuthHandler(users, failing)

		req := &handlers.ForgotPasswordRequest{}
		req.Body.Email = "a@example.com"

		_, err := handler.ForgotPassword(context.Background(), req)

		assertStatus(t, err, http.StatusInternalServerError)
	})
}

func TestResetPassword(t *testing.T) {
	startReset := func(t *testing.T, handler *handlers.AuthHandler, users auth.Users) string {
		t.Helper()

		req := &handlers.ForgotPasswordRequest{}
		req.Body.Email = "a@example.com"

		_, err := handler.ForgotPassword(context.Background(), req)
		require.NoError(t, err)

		stored, err := users.FindByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		require.NotNil(t, stored.ResetToken)

		return *stored.ResetToken
	}

	t.Run("changes the password and clears the token", func(t *testing.T) {
		users := store.NewMemoryUsers()
		handler := newTestAuthHandler(users, &recordingMailer{})
		signupVerified(t, handler, users, "a@example.com")
		token := startReset(t, handler, users)

		req := &handlers.ResetPasswordRequest{Token: token}
		req.Body.Password = "brand-new-pass"

		resp, err := handler.ResetPassword(context.Background(), req)

		require.NoError(t, err)
		assert.Contains(t, resp.Body.Message, "password reset")

		stored, err := users.FindByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		assert.Nil(t, stored.ResetToken)
		assert.Nil(t, stored.ResetExpiresAt)

		login := &handlers.LoginRequest{}
		login.Body.Email = "a@example.com"
		login.Body.Password = "brand-new-pass"
		_, err = handler.Login(context.Background(), login)
		require.NoError(t, err)

		login.Body.Password = "hunter22"
		_, err = handler.Login(context.Background(), login)
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("unknown token is 400", func(t *testing.T) {
		handler := newTestAuthHandler(store.NewMemoryUsers(), &recordingMailer{})

		req := &handlers.ResetPasswordRequest{Token: "no-such-token"}
		req.Body.Password = "brand-new-pass"

		_, err := handler.ResetPassword(context.Background(), req)

		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("expired token is 400", func(t *testing.T) {
		users := store.NewMemoryUsers()
		handler := newTestAuthHandler(users, &recordingMailer{})
		signupVerified(t, handler, users, "a@example.com")
		token := startReset(t, handler, users)

		stored, err := users.FindByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		past := time.Now().UTC().Add(-time.Second)
		stored.ResetExpiresAt = &past
		require.NoError(t, users.Update(context.Background(), stored))

		req := &handlers.ResetPasswordRequest{Token: token}
		req.Body.Password = "brand-new-pass"

		_, err = handler.ResetPassword(context.Background(), req)

		assertStatus(t, err, http.StatusBadRequest)
	})
}

func TestLogout(t *testing.T) {
	handler := newTestAuthHandler(store.NewMemoryUsers(), &recordingMailer{})

	resp, err := handler.Logout(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, auth.SessionCookie, resp.Headers.SetCookie.Name)
	assert.Empty(t, resp.Headers.SetCookie.Value)
	assert.Equal(t, -1, resp.Headers.SetCookie.MaxAge)
}

func TestMe(t *testing.T) {
	t.Run("returns the authenticated account", func(t *testing.T) {
		users := store.NewMemoryUsers()
		handler := newTestAuthHandler(users, &recordingMailer{})
		userID := signupVerified(t, handler, users, "a@example.com")

		me, err := handler.Me(callerCtx(userID), nil)

		require.NoError(t, err)
		assert.Equal(t, "a@example.com", me.Body.Email)
	})

	t.Run("unauthenticated is 401", func(t *testing.T) {
		handler := newTestAuthHandler(store.NewMemoryUsers(), &recordingMailer{})

		_, err := handler.Me(context.Background(), nil)

		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("stale token for a deleted user is 401", func(t *testing.T) {
		handler := newTestAuthHandler(store.NewMemoryUsers(), &recordingMailer{})

		_, err := handler.Me(callerCtx(uuid.New()), nil)

		assertStatus(t, err, http.StatusUnauthorized)
	})
}
