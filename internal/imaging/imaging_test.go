package imaging

import (
	"bytes"
	"errors"
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

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
	return cfg.Width, cfg.Height
}

func TestAvatarFromJPEG(t *testing.T) {
	out, err := Avatar(bytes.NewReader(createTestJPEG(300, 200)))
	if err != nil {
		t.Fatalf("Avatar: %v", err)
	}
	w, h := decodeSize(t, out)
	if w != AvatarSize || h != AvatarSize {
		t.Errorf("expected %dx%d, got %dx%d", AvatarSize, AvatarSize, w, h)
	}
}

func TestAvatarFromSmallPNG(t *testing.T) {
	out, err := Avatar(bytes.NewReader(createTestPNG(40, 60)))
	if err != nil {
		t.Fatalf("Avatar: %v", err)
	}
	w, h := decodeSize(t, out)
	if w != AvatarSize || h != AvatarSize {
		t.Errorf("expected upscale to %d, got %dx%d", AvatarSize, w, h)
	}
}

func TestAvatarRejectsUnsupported(t *testing.T) {
	_, err := Avatar(bytes.NewReader([]byte("GIF89a not really")))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestAvatarRejectsTooLarge(t *testing.T) {
	_, err := Avatar(bytes.NewReader(make([]byte, MaxUploadBytes+10)))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestSquareCrop(t *testing.T) {
	tests := []struct {
		in   image.Rectangle
		want image.Rectangle
	}{
		{image.Rect(0, 0, 300, 200), image.Rect(50, 0, 250, 200)},
		{image.Rect(0, 0, 200, 300), image.Rect(0, 50, 200, 250)},
		{image.Rect(10, 10, 60, 60), image.Rect(10, 10, 60, 60)},
	}
	for _, tt := range tests {
		if got := squareCrop(tt.in); got != tt.want {
			t.Errorf("squareCrop(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
