package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore keeps uploaded attachment files on local disk, one directory
// per ticket.
type LocalStore struct {
	root string
}

// NewLocalStore creates the upload root if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Save writes src under the ticket's directory using a random file name that
// preserves the original extension, and returns the stored path.
func (s *LocalStore) Save(ticketID, fileName string, src io.Reader) (string, error) {
	dir := filepath.Join(s.root, ticketID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create ticket dir: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(fileName))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// Remove deletes a stored file.
func (s *LocalStore) Remove(path string) error {
	return os.Remove(path)
}

// RemoveTicketDir deletes a ticket's whole upload directory.
func (s *LocalStore) RemoveTicketDir(ticketID string) error {
	return os.RemoveAll(filepath.Join(s.root, ticketID))
}
