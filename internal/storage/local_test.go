package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveDeleteURL(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: dir, BaseURL: "/uploads/"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "attendance/a.pdf", strings.NewReader("%PDF"), "application/pdf"))

	data, err := os.ReadFile(filepath.Join(dir, "attendance", "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
	assert.Equal(t, "/uploads/attendance/a.pdf", s.URL("attendance/a.pdf"))

	require.NoError(t, s.Delete(ctx, "attendance/a.pdf"))
	require.NoError(t, s.Delete(ctx, "attendance/a.pdf"))
	_, err = os.Stat(filepath.Join(dir, "attendance", "a.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	err = s.Save(context.Background(), "../escape.txt", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)
}
