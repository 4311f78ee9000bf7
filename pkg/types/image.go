package types

import (
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadBytes is the upload size cap: 5 MB.
const MaxUploadBytes = 5 * 1024 * 1024

// Bounding boxes for the stored renditions. Aspect ratio is preserved and
// images are never upscaled.
const (
	OriginalMaxWidth  = 1920
	OriginalMaxHeight = 1080
	ThumbMaxWidth     = 400
	ThumbMaxHeight    = 400
)

// allowedImageExts is the set of accepted upload extensions.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AllowedImageExt reports whether the filename carries an accepted image
// extension.
func AllowedImageExt(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// Image is the metadata row for one uploaded image: the original
// filename, the stored rendition paths, and the owning session.
type Image struct {
	ID               string    `json:"id"`
	SessionID        int       `json:"session_id"`
	OriginalFilename string    `json:"original_filename"`
	Description      string    `json:"description,omitempty"`
	UploadDate       time.Time `json:"upload_date"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	OriginalPath     string    `json:"original_path"`
	ThumbPath        string    `json:"thumb_path"`
}
