package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// GetMeHandler returns the authenticated user. The master API key has no user row and gets a
// synthetic one.
func GetMeHandler(c echo.Context) error {
	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	app := c.(*middleware.AppContext).App
	if app.MasterUserID != 0 && user.UserID == app.MasterUserID && user.Email == "" {
		return c.JSON(http.StatusOK, userOut{ID: user.UserID, Role: user.Role})
	}

	q := db.New(app.DBConn)
	dbUser, err := q.GetUserByID(c.Request().Context(), user.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, toUserOut(dbUser))
}
