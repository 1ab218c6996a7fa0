package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAvatarDateBasedPath(t *testing.T) {
	s := NewStore(t.TempDir())

	rel, err := s.SaveAvatar("me.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	today := time.Now().UTC().Format("20060102")
	assert.True(t, strings.HasPrefix(rel, "avatar/"+today+"/"), "got %q", rel)
	assert.True(t, strings.HasSuffix(rel, ".png"))

	b, err := os.ReadFile(filepath.Join(s.Root(), filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(b))
}

func TestSaveAvatarUniqueNames(t *testing.T) {
	s := NewStore(t.TempDir())

	a, err := s.SaveAvatar("same.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := s.SaveAvatar("same.jpg", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSaveAvatarStripsDirectoryComponents(t *testing.T) {
	s := NewStore(t.TempDir())

	rel, err := s.SaveAvatar("../../etc/passwd.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, rel, "..")
}
