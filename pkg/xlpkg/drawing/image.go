package drawing

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned for media that is not a raster format
// with a registered decoder (EMF and WMF among them).
var ErrUnsupportedImage = errors.New("unsupported image format")

// ImageInfo describes decodable image bytes.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// InspectImage reads the header of an image blob.
func InspectImage(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
