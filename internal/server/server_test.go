package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/internal/auth"
	mid "github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const masterKey = "master-key"

func newTestApp(t *testing.T) (*mid.App, *memory.Storage) {
	t.Helper()

	s := memory.New()
	for id, name := range map[int64]string{1: "Grandfather", 2: "Father", 3: "Uncle", 4: "Child", 5: "Mother"} {
		s.AddPatient(pedigree.PatientRecord{ID: id, GivenName: name})
	}
	s.AddRelation(1, 2, "parent")
	s.AddRelation(1, 3, "parent")
	s.AddRelation(2, 4, "parent")
	s.AddRelation(5, 4, "parent")
	s.AddLink(2, 5, "Spouse")
	s.AddLink(2, 3, "sibling")

	app := &mid.App{
		Store:          s,
		Builder:        pedigree.NewBuilder(pedigree.NewBuilderParams{Source: s}),
		Tokens:         auth.NewTokenIssuer("test-secret", time.Hour),
		MasterAPIKey:   masterKey,
		MasterUserID:   1000,
		MasterUserRole: auth.RoleAdmin,
	}
	return app, s
}

func request(t *testing.T, app *mid.App, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	NewEcho(app).ServeHTTP(rec, req)
	return rec
}

func TestServiceRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	rec := request(t, app, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pedigree-backend")

	rec = request(t, app, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.True(t, strings.HasPrefix(health["database"], "error:"))

	rec = request(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestPedigreeRoute(t *testing.T) {
	app, _ := newTestApp(t)

	rec := request(t, app, http.MethodGet, "/api/pedigree/4", masterKey)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Pedigree-Truncated"))

	var graph pedigree.Graph
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &graph))

	gens := map[int64]int{}
	for _, n := range graph.Nodes {
		gens[n.ID] = n.Generation
		assert.Equal(t, n.ID == 4, n.IsProband, "node %d", n.ID)
	}
	assert.Equal(t, map[int64]int{1: -2, 2: -1, 3: -1, 4: 0, 5: -1}, gens)
	assert.Contains(t, graph.Links, pedigree.Link{Source: 2, Target: 5, Type: pedigree.LinkSpouse})
	assert.Contains(t, graph.Links, pedigree.Link{Source: 1, Target: 2, Type: pedigree.LinkVertical})
}

func TestPedigreeRoute_MaxNodes(t *testing.T) {
	app, _ := newTestApp(t)

	rec := request(t, app, http.MethodGet, "/api/pedigree/4?max_nodes=1", masterKey)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Pedigree-Truncated"))

	var graph pedigree.Graph
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &graph))
	require.Len(t, graph.Nodes, 1)
	assert.Equal(t, int64(4), graph.Nodes[0].ID)
	assert.Empty(t, graph.Links)
}

func TestPedigreeRoute_Errors(t *testing.T) {
	app, s := newTestApp(t)
	doctor, err := app.Tokens.Issue(7, "doc@example.org", auth.RoleDoctor)
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		token  string
		status int
	}{
		{name: "no token", target: "/api/pedigree/4", status: http.StatusUnauthorized},
		{name: "bad token", target: "/api/pedigree/4", token: "nope", status: http.StatusUnauthorized},
		{name: "unknown proband", target: "/api/pedigree/99", token: masterKey, status: http.StatusNotFound},
		{name: "invalid id", target: "/api/pedigree/abc", token: masterKey, status: http.StatusBadRequest},
		{name: "negative max nodes", target: "/api/pedigree/4?max_nodes=-1", token: masterKey, status: http.StatusBadRequest},
		{name: "doctor may view", target: "/api/pedigree/4", token: doctor, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(t, app, http.MethodGet, tt.target, tt.token)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	s.Err = errors.New("connection reset")
	rec := request(t, app, http.MethodGet, "/api/pedigree/4", masterKey)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPermissions(t *testing.T) {
	app, _ := newTestApp(t)
	doctor, err := app.Tokens.Issue(7, "doc@example.org", auth.RoleDoctor)
	require.NoError(t, err)

	// Rejected before any handler touches the database.
	rec := request(t, app, http.MethodPost, "/api/relations", doctor)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = request(t, app, http.MethodPost, "/api/links", doctor)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateExport_UnknownProband(t *testing.T) {
	app, _ := newTestApp(t)

	rec := request(t, app, http.MethodPost, "/api/pedigree/99/exports", masterKey)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsersMe_MasterKey(t *testing.T) {
	app, _ := newTestApp(t)

	rec := request(t, app, http.MethodGet, "/api/users/me", masterKey)
	require.Equal(t, http.StatusOK, rec.Code)

	var me map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, float64(1000), me["id"])
	assert.Equal(t, auth.RoleAdmin, me["role"])
}

func TestToken_LocalLoginDisabled(t *testing.T) {
	app, _ := newTestApp(t)
	app.Tokens = nil

	rec := request(t, app, http.MethodPost, "/token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
