package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, Dir), 0755))
	deep := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0755))

	got, err := Find(deep, "")
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = Find(root, "")
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindNearestWins(t *testing.T) {
	root := t.TempDir()
	inner := filepath.Join(root, "inner")
	require.NoError(t, os.MkdirAll(filepath.Join(root, Dir), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(inner, Dir), 0755))

	got, err := Find(filepath.Join(inner), "")
	require.NoError(t, err)
	assert.Equal(t, inner, got)
}

func TestFindIgnoresGlobalDir(t *testing.T) {
	home := t.TempDir()
	global := filepath.Join(home, Dir)
	require.NoError(t, os.Mkdir(global, 0755))
	work := filepath.Join(home, "work")
	require.NoError(t, os.Mkdir(work, 0755))

	_, err := Find(work, global)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindFileIsNotProject(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, Dir), nil, 0644))

	_, err := Find(root, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, Dir), 0755))
	sub := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(sub, 0755))

	t.Chdir(sub)
	assert.Equal(t, root, Root(""))

	plain := t.TempDir()
	t.Chdir(plain)
	assert.Equal(t, plain, Root(""))
}
