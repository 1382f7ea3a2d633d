package extra

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

var (
	cA = color.RGBA{R: 255, A: 255}
	cB = color.RGBA{G: 255, A: 255}
	cC = color.RGBA{B: 255, A: 255}
	cD = color.RGBA{R: 255, G: 255, A: 255}
)

// quad builds the 2x2 source [[A B],[C D]]
func quad() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, cA)
	img.Set(1, 0, cB)
	img.Set(0, 1, cC)
	img.Set(1, 1, cD)
	return img
}

func TestOrientAllCodes(t *testing.T) {
	// expected 2x2 grids, row by row
	expected := map[int][4]color.RGBA{
		2: {cB, cA, cD, cC}, // mirror horizontal
		3: {cD, cC, cB, cA}, // rotate 180
		4: {cC, cD, cA, cB}, // mirror vertical
		5: {cA, cC, cB, cD}, // transpose
		6: {cC, cA, cD, cB}, // rotate 90 clockwise
		7: {cD, cB, cC, cA}, // transverse
		8: {cB, cD, cA, cC}, // rotate 90 counter-clockwise
	}

	for code, want := range expected {
		out := orient(quad(), code)

		got := [4]color.RGBA{
			out.At(0, 0).(color.RGBA),
			out.At(1, 0).(color.RGBA),
			out.At(0, 1).(color.RGBA),
			out.At(1, 1).(color.RGBA),
		}

		if got != want {
			t.Errorf("orientation %d: expected %v got %v", code, want, got)
		}
	}
}

func TestOrientSwapsDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))

	for _, code := range []int{5, 6, 7, 8} {
		out := orient(src, code)
		if out.Bounds().Dx() != 2 || out.Bounds().Dy() != 3 {
			t.Errorf("orientation %d: expected 2x3 got %dx%d",
				code, out.Bounds().Dx(), out.Bounds().Dy())
		}
	}

	for _, code := range []int{2, 3, 4} {
		out := orient(src, code)
		if out.Bounds().Dx() != 3 || out.Bounds().Dy() != 2 {
			t.Errorf("orientation %d: expected 3x2 got %dx%d",
				code, out.Bounds().Dx(), out.Bounds().Dy())
		}
	}
}

func TestReorientIdentityIsByteExact(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, quad()); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	out := Reorient(data, 1)
	if !bytes.Equal(out, data) {
		t.Error("orientation 1 should return the input unchanged")
	}

	// out of range codes degrade to the identity as well
	for _, code := range []int{0, -1, 9, 42} {
		if !bytes.Equal(Reorient(data, code), data) {
			t.Errorf("orientation %d should return the input unchanged", code)
		}
	}
}

func TestReorientPNGRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, cA)
	src.Set(2, 1, cB)

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	out := Reorient(buf.Bytes(), 6)

	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}

	if format != "png" {
		t.Errorf("expected the source format back, got %s", format)
	}

	// rotate 90 CW: 3x2 becomes 2x3, (0,0) lands at (1,0)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 3 {
		t.Fatalf("expected 2x3 got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	if c := color.RGBAModel.Convert(img.At(1, 0)).(color.RGBA); c != cA {
		t.Errorf("expected %v at (1,0) got %v", cA, c)
	}
}

func TestReorientBadInputFallsBack(t *testing.T) {
	data := []byte("not decodable at all")
	if out := Reorient(data, 6); !bytes.Equal(out, data) {
		t.Error("undecodable input should be returned unchanged")
	}
}
