package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/foundit/foundit-api/internal/domain"
	"github.com/foundit/foundit-api/internal/service"
)

func TestWriteAuthErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", service.ErrValidation, http.StatusBadRequest},
		{"weak password", service.ErrPasswordTooWeak, http.StatusBadRequest},
		{"reset token invalid", service.ErrResetTokenInvalid, http.StatusBadRequest},
		{"reset token expired", service.ErrResetTokenExpired, http.StatusBadRequest},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"password mismatch", service.ErrPasswordMismatch, http.StatusUnauthorized},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"user missing", service.ErrUserNotFound, http.StatusNotFound},
		{"email taken", service.ErrEmailAlreadyUsed, http.StatusConflict},
		{"username taken", service.ErrUsernameAlreadyTaken, http.StatusConflict},
		{"mail down", service.ErrResetDeliveryFailed, http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := writeAuthError(c, tc.err); err != nil {
				t.Fatalf("writeAuthError returned error: %v", err)
			}
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestRequireSelf(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	newContext := func(param string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPut, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(param)
		return c, rec
	}

	t.Run("matches authenticated user", func(t *testing.T) {
		c, _ := newContext(userID.String())
		c.Set(contextUserKey, &domain.User{ID: userID})

		got, ok := requireSelf(c)
		if !ok {
			t.Fatal("expected requireSelf to succeed")
		}
		if got != userID {
			t.Fatalf("expected id %s, got %s", userID, got)
		}
	})

	t.Run("rejects other user", func(t *testing.T) {
		c, rec := newContext(uuid.New().String())
		c.Set(contextUserKey, &domain.User{ID: userID})

		if _, ok := requireSelf(c); ok {
			t.Fatal("expected requireSelf to reject another user's id")
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", rec.Code)
		}
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		c, rec := newContext("not-a-uuid")
		c.Set(contextUserKey, &domain.User{ID: userID})

		if _, ok := requireSelf(c); ok {
			t.Fatal("expected requireSelf to reject malformed id")
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("rejects anonymous", func(t *testing.T) {
		c, rec := newContext(userID.String())

		if _, ok := requireSelf(c); ok {
			t.Fatal("expected requireSelf to reject missing auth context")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})
}
