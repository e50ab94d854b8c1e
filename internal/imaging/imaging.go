// Package imaging turns uploaded pictures into profile avatars.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// AvatarSize is the width and height of a stored avatar in pixels.
const AvatarSize = 128

// MaxUploadBytes caps how much of an upload is read.
const MaxUploadBytes = 5 << 20

// JPEGQuality is the compression quality of stored avatars.
const JPEGQuality = 85

// ContentType is the MIME type of every stored avatar.
const ContentType = "image/jpeg"

var (
	// ErrUnsupported is returned for anything that is not a JPEG or PNG.
	ErrUnsupported = errors.New("unsupported image format (only JPEG and PNG accepted)")

	// ErrTooLarge is returned for uploads over MaxUploadBytes.
	ErrTooLarge = errors.New("image too large")
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Avatar reads an uploaded image, crops it to a centred square, scales it to
// AvatarSize and re-encodes it as JPEG. The format is sniffed from the bytes,
// never taken from the client.
func Avatar(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	if !allowedMIME[http.DetectContentType(data)] {
		return nil, ErrUnsupported
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, squareCrop(img.Bounds()), draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// squareCrop returns the largest square centred in b.
func squareCrop(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	side := min(w, h)
	x := b.Min.X + (w-side)/2
	y := b.Min.Y + (h-side)/2
	return image.Rect(x, y, x+side, y+side)
}
