// Package storage содержит локальное файловое хранилище сгенерированных
// артефактов (PDF-файлов).
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"storybook-server/internal/interfaces"

	"go.uber.org/zap"
)

// LocalStorage хранит файлы в одном каталоге на локальном диске.
type LocalStorage struct {
	root   string
	logger *zap.Logger
}

var _ interfaces.FileStorage = (*LocalStorage)(nil)

// NewLocalStorage создает каталог хранилища (если его нет) и возвращает
// хранилище поверх него.
func NewLocalStorage(root string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", root, err)
	}
	return &LocalStorage{
		root:   root,
		logger: logger.Named("LocalStorage"),
	}, nil
}

// resolve проверяет, что имя не выходит за пределы каталога хранилища.
func (s *LocalStorage) resolve(name string) (string, error) {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.root, name), nil
}

func (s *LocalStorage) Write(name string, data []byte) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}
	s.logger.Debug("File written", zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}

func (s *LocalStorage) Open(name string) (io.ReadCloser, int64, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file %s: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat file %s: %w", name, err)
	}
	return f, info.Size(), nil
}

func (s *LocalStorage) Delete(name string) (bool, error) {
	path, err := s.resolve(name)
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete file %s: %w", name, err)
	}
	return true, nil
}

func (s *LocalStorage) List() ([]interfaces.FileInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}

	files := make([]interfaces.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, interfaces.FileInfo{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

func (s *LocalStorage) Stat(name string) (interfaces.FileInfo, error) {
	path, err := s.resolve(name)
	if err != nil {
		return interfaces.FileInfo{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return interfaces.FileInfo{}, fmt.Errorf("failed to stat file %s: %w", name, err)
	}
	return interfaces.FileInfo{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
