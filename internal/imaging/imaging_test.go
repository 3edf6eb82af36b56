package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestIsImage(t *testing.T) {
	if !IsImage(createTestJPEG(10, 10)) {
		t.Error("expected JPEG to be detected as image")
	}
	if !IsImage(createTestPNG(10, 10)) {
		t.Error("expected PNG to be detected as image")
	}
	if IsImage([]byte("plain text file")) {
		t.Error("expected text to not be detected as image")
	}
	if IsImage([]byte("GIF89a...")) {
		t.Error("GIF should not be accepted")
	}
}

func TestProcessPNGOutputsJPEG(t *testing.T) {
	result, err := Process(createTestPNG(100, 100))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if !bytes.HasPrefix(result, []byte("\xff\xd8")) {
		t.Error("expected JPEG output")
	}
}

func TestProcessDownscale(t *testing.T) {
	result, err := Process(createTestJPEG(2048, 2048))
	if err != nil {
		t.Fatalf("Process large photo: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dx%d, got %dx%d", MaxDimension, MaxDimension, bounds.Dx(), bounds.Dy())
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	result, err := Process(createTestJPEG(50, 50))
	if err != nil {
		t.Fatalf("Process small photo: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("small photo should not be resized: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessInvalidFormat(t *testing.T) {
	if _, err := Process([]byte("not an image")); err == nil {
		t.Error("expected error for invalid format")
	}
}
