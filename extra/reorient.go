package extra

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
)

// reencodeQuality keeps generational loss invisible when a corrected JPEG
// is written back.
const reencodeQuality = 95

// Reorient returns bytes representing data drawn upright according to the
// EXIF orientation. Orientation 1 (or anything outside 1..8) is a strict
// no-op returning the input slice, there is no pointless re-encode. Decode
// or encode failures also fall back to the input unchanged: orientation
// correction is best effort, never blocking.
func Reorient(data []byte, orientation int) []byte {
	if orientation <= 1 || orientation > 8 {
		return data
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	out := orient(img, orientation)

	var buf bytes.Buffer
	if format == "png" {
		err = png.Encode(&buf, out)
	} else {
		err = jpeg.Encode(&buf, out, &jpeg.Options{Quality: reencodeQuality})
	}
	if err != nil {
		return data
	}

	return buf.Bytes()
}

// orient maps every source pixel to its upright position. Orientations 5-8
// swap the output width and height.
func orient(src image.Image, orientation int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.RGBA
	if orientation >= 5 {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.At(b.Min.X+x, b.Min.Y+y)

			switch orientation {
			case 2: // mirrored
				dst.Set(w-1-x, y, c)
			case 3: // upside down
				dst.Set(w-1-x, h-1-y, c)
			case 4: // mirrored, upside down
				dst.Set(x, h-1-y, c)
			case 5: // mirrored, rotated 90 CCW
				dst.Set(y, x, c)
			case 6: // rotated 90 CW
				dst.Set(h-1-y, x, c)
			case 7: // mirrored, rotated 90 CW
				dst.Set(h-1-y, w-1-x, c)
			case 8: // rotated 90 CCW
				dst.Set(y, w-1-x, c)
			}
		}
	}

	return dst
}
