// Package filestore guarda las planillas subidas: disco local o memoria vía afero, y S3.
package filestore

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/LogFlow-api/internal/domain"
)

// maxSaveAttempts intentos de nombre antes de rendirse ante colisiones.
const maxSaveAttempts = 5

// cleanKey normaliza la clave y rechaza rutas absolutas o que escapen de la raíz.
func cleanKey(key string) (string, error) {
	k := path.Clean(strings.ReplaceAll(key, `\`, "/"))
	if k == "." || path.IsAbs(k) || k == ".." || strings.HasPrefix(k, "../") {
		return "", fmt.Errorf("%w: chave de arquivo inválida %q", domain.ErrInvalidInput, key)
	}
	return k, nil
}

// candidateKey devuelve la clave del intento n: la original o con un sufijo aleatorio antes de la extensión.
func candidateKey(key string, attempt int) string {
	if attempt == 0 {
		return key
	}
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "_" + uuid.New().String()[:8] + ext
}
