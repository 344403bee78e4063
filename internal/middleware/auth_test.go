package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-orders/internal/model"
	"restaurant-orders/internal/service"

	"github.com/labstack/echo/v4"
)

type mockUserService struct {
	getRoleFn func(ctx context.Context, email string) (string, error)
}

func (m *mockUserService) Register(context.Context, string, string) (*model.User, bool, error) {
	return nil, false, nil
}

func (m *mockUserService) List(context.Context) ([]*model.User, error) {
	return nil, nil
}

func (m *mockUserService) GetRole(ctx context.Context, email string) (string, error) {
	if m.getRoleFn != nil {
		return m.getRoleFn(ctx, email)
	}
	return "", model.ErrNotFound
}

func (m *mockUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := m.GetRole(ctx, email)
	return role == model.RoleAdmin, err
}

func (m *mockUserService) Promote(context.Context, uint) error { return nil }
func (m *mockUserService) Delete(context.Context, uint) error  { return nil }

func newTestAuth(users service.UserService) (*Auth, service.TokenService) {
	tokens := service.NewTokenService("test-secret")
	return NewAuth(tokens, users), tokens
}

// run sends a request through the given middlewares into a probe handler and
// reports the resulting status plus whether the handler ran.
func run(t *testing.T, req *http.Request, pathParam [2]string, mws ...echo.MiddlewareFunc) (int, bool) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if pathParam[0] != "" {
		c.SetParamNames(pathParam[0])
		c.SetParamValues(pathParam[1])
	}

	invoked := false
	h := func(c echo.Context) error {
		invoked = true
		return c.NoContent(http.StatusOK)
	}
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec.Code, invoked
}

func TestAuthenticateRejectsMissingCredential(t *testing.T) {
	auth, _ := newTestAuth(&mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	code, invoked := run(t, req, [2]string{}, auth.Authenticate())

	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if invoked {
		t.Fatal("handler must not run without a credential")
	}
}

func TestAuthenticateRejectsInvalidCredential(t *testing.T) {
	auth, _ := newTestAuth(&mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	code, invoked := run(t, req, [2]string{}, auth.Authenticate())

	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if invoked {
		t.Fatal("handler must not run with an invalid credential")
	}
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	auth, tokens := newTestAuth(&mockUserService{})

	token, err := tokens.Issue("alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var identity *service.Identity
	h := auth.Authenticate()(func(c echo.Context) error {
		identity = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("chain failed: %v", err)
	}

	if identity == nil || identity.Email != "alice@example.com" {
		t.Fatalf("expected identity alice@example.com in context, got %+v", identity)
	}
}

func TestRequireAdminRejectsMember(t *testing.T) {
	auth, tokens := newTestAuth(&mockUserService{
		getRoleFn: func(_ context.Context, _ string) (string, error) {
			return model.RoleMember, nil
		},
	})

	token, _ := tokens.Issue("alice@example.com", "")
	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	code, invoked := run(t, req, [2]string{}, auth.Authenticate(), auth.RequireAdmin())
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if invoked {
		t.Fatal("handler must not run for a non-admin")
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	auth, tokens := newTestAuth(&mockUserService{
		getRoleFn: func(_ context.Context, _ string) (string, error) {
			return model.RoleAdmin, nil
		},
	})

	token, _ := tokens.Issue("root@example.com", "")
	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	code, invoked := run(t, req, [2]string{}, auth.Authenticate(), auth.RequireAdmin())
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !invoked {
		t.Fatal("handler should run for an admin")
	}
}

func TestRequireAdminChecksRoleFreshPerRequest(t *testing.T) {
	role := model.RoleAdmin
	auth, tokens := newTestAuth(&mockUserService{
		getRoleFn: func(_ context.Context, _ string) (string, error) {
			return role, nil
		},
	})

	token, _ := tokens.Issue("root@example.com", "")
	chain := []echo.MiddlewareFunc{auth.Authenticate(), auth.RequireAdmin()}

	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	if code, _ := run(t, req, [2]string{}, chain...); code != http.StatusOK {
		t.Fatalf("expected 200 before demotion, got %d", code)
	}

	// demoted with a still-valid credential
	role = model.RoleMember
	req = httptest.NewRequest(http.MethodPatch, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	if code, _ := run(t, req, [2]string{}, chain...); code != http.StatusForbidden {
		t.Fatalf("expected 403 after demotion, got %d", code)
	}
}

func TestRequireSelfRejectsForeignEmail(t *testing.T) {
	auth, tokens := newTestAuth(&mockUserService{})

	token, _ := tokens.Issue("alice@example.com", "")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	code, invoked := run(t, req, [2]string{"email", "bob@example.com"},
		auth.Authenticate(), auth.RequireSelf("email"))
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if invoked {
		t.Fatal("handler must not run for a foreign identity-scoped request")
	}
}

func TestRequireSelfAllowsOwnEmail(t *testing.T) {
	auth, tokens := newTestAuth(&mockUserService{})

	token, _ := tokens.Issue("alice@example.com", "")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	code, invoked := run(t, req, [2]string{"email", "alice@example.com"},
		auth.Authenticate(), auth.RequireSelf("email"))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !invoked {
		t.Fatal("handler should run for the caller's own resource")
	}
}
