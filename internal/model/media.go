package model

import "errors"

// Upload subfolders under the configured root.
const (
	ProjectMediaFolder = "projects"
	ProfileMediaFolder = "profiles"
)

// Image normalization bounds.
const (
	MaxImageWidth    = 1600
	ImageJPEGQuality = 85
)

// ContentTypeJPEG is the type stored for normalized images.
const ContentTypeJPEG = "image/jpeg"

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedVideoTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
	"video/ogg":  true,
}

// IsAllowedImageType reports whether the content type is an accepted image.
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

// IsAllowedVideoType reports whether the content type is an accepted video.
func IsAllowedVideoType(contentType string) bool {
	return allowedVideoTypes[contentType]
}

var (
	// ErrFileTooLarge is returned when an upload exceeds the configured cap
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	// ErrInvalidMediaType is returned for an unsupported content type
	ErrInvalidMediaType = errors.New("unsupported media type")
)
