package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"restaurant-orders/internal/model"
	"restaurant-orders/internal/service"

	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

// Auth carries the two request gates: credential verification and role
// authorization. Gates are strictly ordered, an authorization gate assumes
// Authenticate has already run and rejected anonymous requests.
type Auth struct {
	tokens service.TokenService
	users  service.UserService
}

func NewAuth(tokens service.TokenService, users service.UserService) *Auth {
	return &Auth{
		tokens: tokens,
		users:  users,
	}
}

// IdentityFrom returns the authenticated identity attached by Authenticate,
// or nil on an ungated route.
func IdentityFrom(c echo.Context) *service.Identity {
	identity, _ := c.Get(identityContextKey).(*service.Identity)
	return identity
}

// Authenticate rejects the request before the next stage runs unless a valid,
// unexpired bearer credential is presented.
func (a *Auth) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			identity, err := a.tokens.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired credentials")
			}

			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// authorize is the single policy decision shared by every privileged route:
// does the identity hold the required role right now. The role is read from
// the store on every call, a cached role could outlive a demotion.
func (a *Auth) authorize(ctx context.Context, identity *service.Identity, requiredRole string) error {
	if identity == nil {
		return model.ErrInvalidCredential
	}

	role, err := a.users.GetRole(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrForbidden
		}
		return err
	}
	if role != requiredRole {
		return model.ErrForbidden
	}

	return nil
}

// RequireAdmin runs after Authenticate and rejects identities that do not
// currently hold the admin role.
func (a *Auth) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := a.authorize(c.Request().Context(), IdentityFrom(c), model.RoleAdmin)
			if err != nil {
				switch {
				case errors.Is(err, model.ErrInvalidCredential):
					return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
				case errors.Is(err, model.ErrForbidden):
					return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
				default:
					return err
				}
			}

			return next(c)
		}
	}
}

// RequireSelf restricts an identity-scoped route to its own identity: the
// email path parameter must equal the authenticated email.
func (a *Auth) RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			if identity == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}
			if c.Param(param) != identity.Email {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}

			return next(c)
		}
	}
}
