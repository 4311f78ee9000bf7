package imagestore

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // registers gif decoding
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // registers webp decoding
)

// decode parses the upload into an image using the registered decoders
// (jpeg, png, gif, webp).
func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("not a decodable image: %w", err)
	}
	return img, nil
}

// fitWithin scales src down to fit the bounding box, preserving aspect
// ratio. Images already inside the box are returned unscaled; nothing is
// ever upscaled.
func fitWithin(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	dw := max(int(float64(w)*scale), 1)
	dh := max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// jpegQuality balances fidelity against the whole-document storage
// model; renditions are display copies, not archival masters.
const jpegQuality = 85

// encode serializes the rendition. PNG uploads stay PNG so line art and
// screenshots keep their edges; every other accepted format re-encodes
// as JPEG (gif and webp renditions lose animation, which the source
// formats never carried in practice). Returns the bytes and the
// extension used for the stored blob.
func encode(img image.Image, originalFilename string) ([]byte, string, error) {
	var buf bytes.Buffer
	if strings.EqualFold(filepath.Ext(originalFilename), ".png") {
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("encoding png: %w", err)
		}
		return buf.Bytes(), ".png", nil
	}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), ".jpg", nil
}
