package icon

import (
	"bytes"
	"image"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"

	platformerrors "storeicons/internal/platform/errors"
)

// SourceImage is an immutable decoded source raster, already normalized to a
// 4-channel layout. Sources without an alpha channel come out fully opaque.
type SourceImage struct {
	Pixels *image.NRGBA
	Width  int
	Height int
	Format string
}

var imageSignatures = map[string][]byte{
	"jpeg":    {0xFF, 0xD8},
	"png":     {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
	"gif":     {0x47, 0x49, 0x46, 0x38},
	"bmp":     {0x42, 0x4D},
	"tiff-le": {0x49, 0x49, 0x2A, 0x00},
	"tiff-be": {0x4D, 0x4D, 0x00, 0x2A},
	"webp":    {0x52, 0x49, 0x46, 0x46},
}

func sniffFormat(data []byte) string {
	for format, signature := range imageSignatures {
		if bytes.HasPrefix(data, signature) {
			return format
		}
	}
	return ""
}

// LoadSource reads and decodes a raster image file.
func LoadSource(path string) (*SourceImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindInvalidImage,
			"load source", "open source image", err)
	}
	defer file.Close()

	return DecodeSource(file)
}

// DecodeSource decodes a raster stream (PNG, JPEG, BMP, GIF, TIFF or WebP)
// into a SourceImage. Anything that fails header or pixel decoding is an
// invalid-image failure; no ratio math or rendering ever sees it.
func DecodeSource(r io.Reader) (*SourceImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindInvalidImage,
			"decode source", "read source stream", err)
	}
	if len(data) == 0 {
		return nil, platformerrors.New(platformerrors.KindInvalidImage,
			"decode source", "empty source stream")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		msg := "not a supported raster image"
		if sniffFormat(data) == "" {
			msg = "unrecognized file signature"
		}
		return nil, platformerrors.Wrap(platformerrors.KindInvalidImage,
			"decode source", msg, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, platformerrors.New(platformerrors.KindInvalidImage,
			"decode source", "image reports degenerate dimensions")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindInvalidImage,
			"decode source", "decode image pixels", err)
	}

	pixels := imaging.Clone(img)
	bounds := pixels.Bounds()
	return &SourceImage{
		Pixels: pixels,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}, nil
}
