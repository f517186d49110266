// Package storage guarda archivos adjuntos (comprobantes de báscula) en disco
// local y los expone bajo /uploads.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage guarda archivos en un directorio local con nombre aleatorio.
type LocalStorage struct {
	dir string
}

// NewLocalStorage crea el directorio si no existe.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Dir directorio físico de los archivos (para servirlo como estático).
func (s *LocalStorage) Dir() string { return s.dir }

// Save persiste el archivo y devuelve la ruta pública (/uploads/<nombre>).
// El nombre original se descarta; solo se conserva la extensión.
func (s *LocalStorage) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("crear archivo destino: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copiar archivo: %w", err)
	}
	return "/uploads/" + name, nil
}
