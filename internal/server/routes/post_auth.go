package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/OFFIS-RIT/pedigree/backend/internal/auth"
	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"
	pgstore "github.com/OFFIS-RIT/pedigree/backend/pkg/store/pgx"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

type userOut struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
}

func toUserOut(u db.User) userOut {
	return userOut{
		ID:       u.ID,
		Email:    u.Email,
		FullName: pgstore.TextPtr(u.FullName),
		Role:     u.Role,
	}
}

// RegisterHandler creates a user account
func RegisterHandler(c echo.Context) error {
	type registerBody struct {
		Email    string  `json:"email" validate:"required,email"`
		Password string  `json:"password" validate:"required,min=6"`
		FullName *string `json:"full_name"`
		Role     string  `json:"role"`
	}

	data := new(registerBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	role := data.Role
	if role == "" {
		role = auth.RoleResearcher
	}
	if !auth.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown role " + role})
	}

	ctx := c.Request().Context()
	q := db.New(c.(*middleware.AppContext).App.DBConn)
	email := strings.ToLower(strings.TrimSpace(data.Email))

	_, err := q.GetUserByEmail(ctx, email)
	if err == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email already registered"})
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error("[Auth] Failed to look up user", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		logger.Error("[Auth] Failed to hash password", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	user, err := q.CreateUser(ctx, db.CreateUserParams{
		Email:          email,
		HashedPassword: hash,
		FullName:       textOf(data.FullName),
		Role:           role,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email already registered"})
		}
		logger.Error("[Auth] Failed to create user", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	logger.Info("[Auth] Registered user", "user_id", user.ID, "role", user.Role)
	return c.JSON(http.StatusOK, toUserOut(user))
}

// TokenHandler exchanges credentials for a bearer token. Accepts the OAuth2 password form
// (username, password) as well as JSON.
func TokenHandler(c echo.Context) error {
	type tokenBody struct {
		Username string `json:"username" form:"username"`
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	type tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	app := c.(*middleware.AppContext).App
	if app.Tokens == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Local login is disabled"})
	}

	data := new(tokenBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	login := data.Username
	if login == "" {
		login = data.Email
	}
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	user, err := q.GetUserByEmail(ctx, login)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Incorrect credentials"})
		}
		logger.Error("[Auth] Failed to look up user", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if !user.IsActive {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Incorrect credentials"})
	}

	if err := auth.CheckPassword(user.HashedPassword, data.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Incorrect credentials"})
		}
		logger.Error("[Auth] Failed to verify password", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	token, err := app.Tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		logger.Error("[Auth] Failed to issue token", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
