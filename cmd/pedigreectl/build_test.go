package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const familyYAML = `
patients:
  - id: 1
    given_name: Pyotr
  - id: 2
    given_name: Anna
  - id: 3
    given_name: Ilya
  - id: 4
    given_name: Vera
relations:
  - parent_id: 1
    child_id: 3
  - parent_id: 2
    child_id: 3
links:
  - patient1_id: 1
    patient2_id: 2
    link_type: spouse
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.yaml")
	require.NoError(t, os.WriteFile(path, []byte(familyYAML), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBuildCmd_Fixture(t *testing.T) {
	out, _, err := execute(t, "build", "--proband", "3", "--fixture", writeFixture(t), "--compact")
	require.NoError(t, err)

	var graph pedigree.Graph
	require.NoError(t, json.Unmarshal([]byte(out), &graph))

	gens := map[int64]int{}
	for _, n := range graph.Nodes {
		gens[n.ID] = n.Generation
		assert.Equal(t, n.ID == 3, n.IsProband)
	}
	assert.Equal(t, map[int64]int{1: -1, 2: -1, 3: 0}, gens)
	assert.Len(t, graph.Links, 3)
}

func TestBuildCmd_Truncated(t *testing.T) {
	_, errOut, err := execute(t, "build", "--proband", "3", "--fixture", writeFixture(t), "--max-nodes", "2")
	require.NoError(t, err)
	assert.Contains(t, errOut, "truncated at 2 nodes")
}

func TestBuildCmd_Errors(t *testing.T) {
	fixture := writeFixture(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown proband", args: []string{"build", "--proband", "99", "--fixture", fixture}},
		{name: "missing proband flag", args: []string{"build", "--fixture", fixture}},
		{name: "bad max nodes", args: []string{"build", "--proband", "3", "--fixture", fixture, "--max-nodes", "0"}},
		{name: "missing fixture file", args: []string{"build", "--proband", "3", "--fixture", filepath.Join(t.TempDir(), "nope.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestMigrateCmd_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, _, err := execute(t, "migrate", "up")
	assert.ErrorContains(t, err, "database url is required")
}
