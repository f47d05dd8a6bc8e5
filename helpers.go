package aiwand

import (
	"encoding/base64"
	"fmt"
	"math/rand/v2"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/onlyoneaman/aiwand/providers/ai"
)

// NewUUID returns a random version 4 UUID string.
func NewUUID() string {
	return uuid.NewString()
}

// RandomInt returns a uniformly random integer in [min, max].
func RandomInt(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("aiwand: invalid range [%d, %d]", min, max)
	}
	return min + rand.IntN(max-min+1), nil
}

// LoadImage turns a URL or local file path into image data ready to attach
// to a message via [WithImages]. Remote URLs are passed through for the
// provider to fetch; local files are read and base64 encoded with a MIME
// type guessed from the extension, defaulting to image/png.
func LoadImage(src string) (ai.ImageData, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return ai.ImageData{}, fmt.Errorf("%w: image source", ErrEmptyInput)
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return ai.ImageData{URL: trimmed}, nil
	}

	raw, err := os.ReadFile(trimmed)
	if err != nil {
		return ai.ImageData{}, fmt.Errorf("aiwand: reading image %s: %w", trimmed, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(trimmed))
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(raw)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/png"
	}

	return ai.ImageData{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(raw),
	}, nil
}
