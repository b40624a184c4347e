package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	maxUploadBytes = 10 << 20 // 10 MiB
	maxImageWidth  = 2048
)

// MediaService validates and stores report image attachments. The returned
// asset key doubles as the deletion key; Remove with the same key tears the
// object down again.
type MediaService struct {
	store ObjectStore
}

func NewMediaService(store ObjectStore) *MediaService {
	return &MediaService{store: store}
}

var _ Media = (*MediaService)(nil)

// Store uploads an image and returns its object key and public URL. Payloads
// that do not decode as an image are rejected; anything wider than
// maxImageWidth is downscaled before upload.
func (s *MediaService) Store(ctx context.Context, ownerID int, up ImageUpload) (Asset, error) {
	if len(up.Data) == 0 {
		return Asset{}, invalidInput("empty image payload")
	}
	if len(up.Data) > maxUploadBytes {
		return Asset{}, invalidInput(fmt.Sprintf("image exceeds %d bytes", maxUploadBytes))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(up.Data))
	if err != nil {
		return Asset{}, invalidInput("payload is not a decodable image")
	}

	data := up.Data
	contentType := up.ContentType
	if contentType == "" {
		contentType = "image/" + format
	}

	if cfg.Width > maxImageWidth {
		data, err = downscale(up.Data)
		if err != nil {
			return Asset{}, invalidInput("payload is not a decodable image")
		}
		contentType = "image/jpeg"
	}

	key := objectKey(ownerID, up.Filename)
	url, err := s.store.Upload(ctx, key, contentType, data)
	if err != nil {
		return Asset{}, err
	}
	return Asset{Key: key, URL: url}, nil
}

// Remove deletes a stored asset. Removal of a nonexistent key succeeds.
func (s *MediaService) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.store.Remove(ctx, key)
}

// objectKey builds "reports/<owner>/<uuid>_<name>" so the owner and a unique
// component are always part of the deletion key.
func objectKey(ownerID int, filename string) string {
	return fmt.Sprintf("reports/%d/%s_%s", ownerID, uuid.NewString(), sanitizeFilename(filename))
}

// sanitizeFilename keeps the base name and squashes characters that have
// meaning in object keys or URLs.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "image"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// downscale resizes to maxImageWidth preserving aspect ratio, re-encoding as JPEG.
func downscale(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	resized := imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
