// Package media stores uploaded files on the local filesystem.
package media

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store writes uploads under a single media root. Avatars land in
// avatar/YYYYMMDD/<random>.<ext> so the directory layout follows the
// upload date.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the media root directory, for static file serving.
func (s *Store) Root() string {
	return s.root
}

// SaveAvatar stores the uploaded file and returns its path relative to
// the media root, always slash-separated.
func (s *Store) SaveAvatar(filename string, r io.Reader) (string, error) {
	name, err := uniqueName(filename)
	if err != nil {
		return "", err
	}
	rel := filepath.Join("avatar", time.Now().UTC().Format("20060102"), name)

	dst := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("media: mkdir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("media: create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("media: write: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// uniqueName keeps only the original extension; the base name is random
// so uploads never collide or traverse directories.
func uniqueName(filename string) (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("media: rand: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	return hex.EncodeToString(b) + ext, nil
}
