package extra

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const variantQuality = 85

// TransformVariant re-encodes an image as a JPEG no wider than maxWidth,
// keeping the aspect ratio. Images already narrow enough are only
// re-encoded. The result backs the transformed URL returned on upload.
func TransformVariant(data []byte, maxWidth int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()

	w, h := srcW, srcH
	if srcW > maxWidth {
		ratio := float64(maxWidth) / float64(srcW)
		w = maxWidth
		h = int(float64(srcH) * ratio)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: variantQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
