package document

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage writes uploaded files to disk under a date-partitioned layout:
// <root>/2026/09/01/<uuid>.<ext>. Stored names never reuse client input.
type Storage struct {
	root string
}

func NewStorage(root string) *Storage {
	return &Storage{root: root}
}

// Save streams the upload to disk and returns the path relative to root.
func (s *Storage) Save(file *multipart.FileHeader) (string, error) {
	now := time.Now().UTC()
	dir := filepath.Join(s.root, now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}

	rel, err := filepath.Rel(s.root, dst)
	if err != nil {
		return "", err
	}
	return rel, nil
}

// Abs resolves a stored relative path, refusing escapes outside the root.
func (s *Storage) Abs(rel string) (string, error) {
	abs := filepath.Join(s.root, rel)
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	full, err := filepath.Abs(abs)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(full, rootAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes upload root")
	}
	return full, nil
}

func (s *Storage) Remove(rel string) error {
	abs, err := s.Abs(rel)
	if err != nil {
		return err
	}
	return os.Remove(abs)
}
