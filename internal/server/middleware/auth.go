package middleware

import (
	"net/http"
	"strings"

	"github.com/OFFIS-RIT/pedigree/backend/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg})
}

func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			return unauthorized(c, "Could not validate credentials")
		}

		ac := c.(*AppContext)
		app := ac.App

		// Master API Key bypass
		if app.MasterAPIKey != "" && app.MasterUserID != 0 && app.MasterUserRole != "" && token == app.MasterAPIKey {
			ac.User = &AppUser{
				UserID:      app.MasterUserID,
				Role:        app.MasterUserRole,
				Permissions: auth.AllPermissions,
			}
			return next(c)
		}

		var (
			user *AppUser
			err  error
		)
		if app.Key != nil {
			user, err = userFromExternalToken((*app.Key).Keyfunc, token)
		} else if app.Tokens != nil {
			user, err = userFromLocalToken(app.Tokens, token)
		} else {
			err = auth.ErrInvalidToken
		}
		if err != nil {
			return unauthorized(c, "Could not validate credentials")
		}

		ac.User = user
		return next(c)
	}
}

func userFromLocalToken(tokens *auth.TokenIssuer, token string) (*AppUser, error) {
	claims, err := tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	return &AppUser{
		UserID:      claims.ID,
		Email:       claims.Subject,
		Role:        claims.Role,
		Permissions: auth.PermissionsForRole(claims.Role),
	}, nil
}

// External issuers may send explicit permissions. Without them the role decides.
func userFromExternalToken(k jwt.Keyfunc, token string) (*AppUser, error) {
	parsed, err := jwt.Parse(token, k)
	if err != nil || !parsed.Valid {
		return nil, auth.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, auth.ErrInvalidToken
	}

	userID, err := auth.UserIDFromClaims(claims)
	if err != nil {
		return nil, err
	}

	role := auth.RoleResearcher
	if roleClaim, ok := claims["role"].(string); ok && roleClaim != "" {
		role = roleClaim
	}
	email, _ := claims["sub"].(string)

	var permissions []string
	if permsClaim, ok := claims["permissions"].([]any); ok {
		for _, p := range permsClaim {
			if pStr, ok := p.(string); ok {
				permissions = append(permissions, pStr)
			}
		}
	}
	if len(permissions) == 0 {
		permissions = auth.PermissionsForRole(role)
	}

	return &AppUser{
		UserID:      userID,
		Email:       email,
		Role:        role,
		Permissions: permissions,
	}, nil
}
