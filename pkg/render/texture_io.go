package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// decodeTextureFile opens and decodes path into a Texture. The on-disk
// codec is selected by extension rather than magic-byte sniffing: TGA in
// particular has no reliable signature to register with image.Decode.
func decodeTextureFile(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	case ".webp":
		img, err = nativewebp.Decode(f)
	case ".tga":
		img, err = tga.Decode(f)
	default:
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return textureFromImage(img), nil
}

// textureFromImage converts a decoded image.Image into a Texture, sampling
// every pixel into [0,1] Color components.
func textureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	tex := &Texture{Width: width, Height: height, Pixels: make([]Color, width*height)}

	for y := range height {
		for x := range width {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			tex.Pixels[y*width+x] = Color{
				R: float64(r) / 65535,
				G: float64(g) / 65535,
				B: float64(b) / 65535,
				A: float64(a) / 65535,
			}
		}
	}
	return tex
}
