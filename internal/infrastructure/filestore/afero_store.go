package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/spf13/afero"

	"github.com/jhoicas/LogFlow-api/internal/application/importer"
	"github.com/jhoicas/LogFlow-api/internal/domain"
)

var _ importer.FileStore = (*AferoStore)(nil)

// AferoStore almacén sobre un afero.Fs (disco local con raíz fija o memoria).
type AferoStore struct {
	fs afero.Fs
}

// NewLocalStore crea el almacén en disco bajo root (se crea si no existe).
func NewLocalStore(root string) (*AferoStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &AferoStore{fs: afero.NewBasePathFs(afero.NewOsFs(), root)}, nil
}

// NewMemoryStore crea un almacén en memoria (tests y desarrollo).
func NewMemoryStore() *AferoStore {
	return &AferoStore{fs: afero.NewMemMapFs()}
}

// NewAferoStore envuelve un afero.Fs arbitrario.
func NewAferoStore(fsys afero.Fs) *AferoStore {
	return &AferoStore{fs: fsys}
}

// Save crea el archivo sin sobrescribir: si la clave existe prueba con un sufijo aleatorio.
func (s *AferoStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(path.Dir(k), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio %s: %w", path.Dir(k), err)
	}
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := candidateKey(k, attempt)
		f, err := s.fs.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("abrir %s: %w", candidate, err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			_ = s.fs.Remove(candidate)
			return "", fmt.Errorf("escribir %s: %w", candidate, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("cerrar %s: %w", candidate, err)
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%w: nome de arquivo em uso %s", domain.ErrDuplicate, k)
}

// Open lee el archivo completo. Si no existe devuelve domain.ErrFileNotFound.
func (s *AferoStore) Open(ctx context.Context, key string) ([]byte, error) {
	k, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, k)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, k)
	}
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", k, err)
	}
	return data, nil
}

// Delete borra el archivo; borrar uno inexistente no es error.
func (s *AferoStore) Delete(ctx context.Context, key string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(k); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar %s: %w", k, err)
	}
	return nil
}
