package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	// Card thumbnails are square
	thumbSize    = 220
	qualityThumb = 75
	// maxSourceImageSize bounds a fetched source image
	maxSourceImageSize = 16 << 20
)

var validCode = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ImageSourceFunc resolves a product code to its source image URL
type ImageSourceFunc func(code string) (string, bool)

// ThumbnailService builds card thumbnails from product images and caches them on disk
type ThumbnailService struct {
	cacheDir string
	source   ImageSourceFunc
	client   *http.Client
	group    singleflight.Group
}

// NewThumbnailService creates a new ThumbnailService.
// A nil client uses a client with a 20 second timeout.
func NewThumbnailService(cacheDir string, source ImageSourceFunc, client *http.Client) *ThumbnailService {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &ThumbnailService{cacheDir: cacheDir, source: source, client: client}
}

// ErrImageNotFound is returned for codes without a source image
var ErrImageNotFound = errors.New("product image not found")

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func (t *ThumbnailService) EnsureCacheDir() error {
	if err := os.MkdirAll(t.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// CachePath returns the cache file path for a product code
func (t *ThumbnailService) CachePath(code string) string {
	return filepath.Join(t.cacheDir, fmt.Sprintf("%s_%dx%d_1.jpg", code, thumbSize, thumbSize))
}

// Thumbnail returns the JPEG thumbnail of the product with code.
// Concurrent requests for the same code share one fetch.
func (t *ThumbnailService) Thumbnail(ctx context.Context, code string) ([]byte, error) {
	if !validCode.MatchString(code) {
		return nil, ErrImageNotFound
	}

	cachePath := t.CachePath(code)
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	v, err, shared := t.group.Do(code, func() (interface{}, error) {
		return t.build(ctx, code, cachePath)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Ctx(ctx).Debug().Str("code", code).Msg("Thumbnail: shared in-flight build")
	}
	return v.([]byte), nil
}

func (t *ThumbnailService) build(ctx context.Context, code, cachePath string) ([]byte, error) {
	url, ok := t.source(code)
	if !ok {
		return nil, ErrImageNotFound
	}

	raw, err := t.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	thumb, err := OptimizeImage(raw)
	if err != nil {
		return nil, err
	}

	if err := t.EnsureCacheDir(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Thumbnail: cache unavailable")
		return thumb, nil
	}
	if err := writeFileAtomic(cachePath, thumb); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("path", cachePath).Msg("Thumbnail: failed to write to cache")
		return thumb, nil
	}

	log.Ctx(ctx).Info().Str("code", code).Int("bytes", len(thumb)).Msg("Thumbnail: image cached")
	return thumb, nil
}

// writeFileAtomic writes data to a temporary file and renames it into place,
// so concurrent readers never see a partial thumbnail
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".thumb-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

func (t *ThumbnailService) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceImageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

// OptimizeImage crops and scales an image to a card thumbnail.
// imageData: raw image bytes (PNG, JPEG, etc.)
// Returns JPEG image bytes
func OptimizeImage(imageData []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fill(img, thumbSize, thumbSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(qualityThumb)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
