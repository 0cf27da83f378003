package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cortesys/cutplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupRoundTrip(t *testing.T) {
	src := NewStore(t.TempDir())

	custom := model.NewSheetType("Chipboard 16mm", 2800, 2070, 16, 190, model.GrainNone)
	require.NoError(t, src.AddSheetType(custom))
	require.NoError(t, src.AddClient(model.NewClient("Joinery Ltd")))
	p := model.NewCutProject("Kitchen")
	require.NoError(t, src.SaveProject(p))

	backupPath := filepath.Join(t.TempDir(), "nested", "backup.json")
	require.NoError(t, src.Export(backupPath))

	dst := NewStore(t.TempDir())
	require.NoError(t, dst.Import(backupPath))

	sheets, err := dst.SheetTypes()
	require.NoError(t, err)
	assert.Len(t, sheets, 5, "seeded defaults plus the custom type")

	clients, err := dst.Clients()
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Joinery Ltd", clients[0].Name)

	projects, err := dst.Projects()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Kitchen", projects[0].Name)
}

func TestImport_RejectsInvalidBackup(t *testing.T) {
	s := NewStore(t.TempDir())

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"created_at":"now"}`), 0644))
	assert.ErrorContains(t, s.Import(path), "missing version")

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	assert.ErrorContains(t, s.Import(path), "parse backup")

	assert.ErrorContains(t, s.Import(filepath.Join(t.TempDir(), "nope.json")), "read backup")
}
