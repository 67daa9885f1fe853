package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSnapshotCopiesTables(t *testing.T) {
	d := newTestDataset(t)

	snap := d.Snapshot()
	assert.Len(t, snap.Users, UserCount)
	assert.Len(t, snap.Comments, CommentCount)
	assert.Equal(t, "admin@gmail.com", snap.Admin.Email)

	snap.Users[0].Name = "changed"
	assert.NotEqual(t, "changed", d.Users.All()[0].Name)
}

func TestSnapshotYAMLUsesSnakeCaseKeys(t *testing.T) {
	d := newTestDataset(t)

	out, err := yaml.Marshal(d.Snapshot())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Contains(t, doc, "transactions")

	admin, ok := doc["admin"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin@gmail.com", admin["email"])
	assert.Contains(t, admin, "created_at")
}
