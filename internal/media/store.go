// Package media stores generated assets (avatars) on the local filesystem
// and hands back the public URL path the router serves them under.
package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/otostudy/otostudy-backend/internal/logger"
	"github.com/otostudy/otostudy-backend/internal/utils"
)

type Store struct {
	log     *logger.Logger
	root    string
	baseURL string
}

func NewStore(log *logger.Logger) (*Store, error) {
	storeLog := log.With("service", "MediaStore")
	root := utils.GetEnv("MEDIA_ROOT", "./media", log)
	baseURL := utils.GetEnv("MEDIA_BASE_URL", "/media", log)

	if err := os.MkdirAll(filepath.Join(root, "avatars"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &Store{log: storeLog, root: root, baseURL: baseURL}, nil
}

// Root is the directory the router serves as static media.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) SaveAvatar(userID uuid.UUID, png []byte) (string, error) {
	name := fmt.Sprintf("%s.png", userID)
	path := filepath.Join(s.root, "avatars", name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("failed to write avatar: %w", err)
	}
	return s.baseURL + "/avatars/" + name, nil
}
