package middleware

import (
	"github.com/OFFIS-RIT/pedigree/backend/internal/auth"
	"github.com/OFFIS-RIT/pedigree/backend/internal/queue"
	"github.com/OFFIS-RIT/pedigree/backend/internal/storage"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/store"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

type AppUser struct {
	UserID      int64
	Email       string
	Role        string
	Permissions []string
}

type App struct {
	DBConn  *pgxpool.Pool
	Queue   queue.Publisher
	Objects storage.ObjectStore

	// Store feeds Builder. It is backed by DBConn in production.
	Store   store.Storage
	Builder *pedigree.Builder

	// Key verifies tokens of an external issuer. When nil, Tokens verifies locally issued ones.
	Key    *keyfunc.Keyfunc
	Tokens *auth.TokenIssuer

	MasterAPIKey   string
	MasterUserID   int64
	MasterUserRole string
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

// AppContextMiddleware wraps every request context into an AppContext sharing app.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
