package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes uploaded images under a media root, one subdirectory per
// resource kind (community_posts, bird_detections, ...). Stored paths are
// relative to the root so the root can move between environments.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Save writes data to <root>/<subdir>/<uuid><ext> and returns the path
// relative to the media root.
func (s *Store) Save(subdir, ext string, data []byte) (string, error) {
	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	name := uuid.New().String() + ext
	relPath := filepath.Join(subdir, name)
	if err := os.WriteFile(filepath.Join(s.root, relPath), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return relPath, nil
}

// ExtForContentType maps the accepted upload content types to a file
// extension, defaulting to .jpg.
func ExtForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
