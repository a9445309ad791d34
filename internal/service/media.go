package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edgomes/portfolio-backend/internal/model"
)

// MediaService validates uploads, normalizes images and hands the bytes to
// the configured storage backend.
type MediaService struct {
	storage Storage
	maxSize int64
	log     zerolog.Logger
}

func NewMediaService(storage Storage, maxSize int64, log zerolog.Logger) *MediaService {
	return &MediaService{storage: storage, maxSize: maxSize, log: log}
}

// StoreImage validates and stores an image upload under folder. JPEG and
// PNG are re-encoded as JPEG and shrunk to MaxImageWidth when wider; GIF
// and WebP are stored as-is so animation survives.
func (s *MediaService) StoreImage(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	data, contentType, err := s.readUpload(file, header)
	if err != nil {
		return "", err
	}
	if !model.IsAllowedImageType(contentType) {
		return "", model.ErrInvalidMediaType
	}

	ext := extensionFor(contentType, header.Filename)
	if contentType == "image/jpeg" || contentType == "image/png" {
		data, err = normalizeImage(data)
		if err != nil {
			return "", err
		}
		contentType = model.ContentTypeJPEG
		ext = ".jpg"
	}

	key := mediaKey(folder, header.Filename, ext)
	if err := s.storage.Save(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// StoreVideo validates and stores a video upload without transcoding.
func (s *MediaService) StoreVideo(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	data, contentType, err := s.readUpload(file, header)
	if err != nil {
		return "", err
	}
	if !model.IsAllowedVideoType(contentType) {
		return "", model.ErrInvalidMediaType
	}

	key := mediaKey(folder, header.Filename, extensionFor(contentType, header.Filename))
	if err := s.storage.Save(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// Remove deletes stored media, logging instead of failing; a leaked file is
// not worth failing the request that displaced it.
func (s *MediaService) Remove(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.storage.Remove(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to remove media")
		}
	}
}

// URL maps a stored key to the URL clients fetch it from.
func (s *MediaService) URL(key string) string {
	return s.storage.URL(key)
}

func (s *MediaService) readUpload(file multipart.File, header *multipart.FileHeader) ([]byte, string, error) {
	if header.Size > s.maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data)
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return data, contentType, nil
}

// normalizeImage re-encodes as JPEG, downscaling to MaxImageWidth when the
// source is wider. Aspect ratio is preserved.
func normalizeImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > model.MaxImageWidth {
		img = imaging.Resize(img, model.MaxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(model.ImageJPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// mediaKey builds "<folder>/<sanitized-base>_<uuid8><ext>". The random
// suffix avoids collisions between uploads sharing a filename.
func mediaKey(folder, filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = sanitizeFilename(base)
	if base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%s/%s_%s%s", folder, base, uuid.NewString()[:8], ext)
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func extensionFor(contentType, filename string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/ogg":
		return ".ogv"
	}
	if ext := filepath.Ext(filename); ext != "" {
		return strings.ToLower(ext)
	}
	return ".bin"
}
