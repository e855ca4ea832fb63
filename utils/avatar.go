package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/nfnt/resize"
)

// AvatarMaxSide is the largest width or height kept for stored avatars.
const AvatarMaxSide = 256

var errNotDataURL = errors.New("not a base64 image data URL")

// ShrinkAvatar downsizes a base64 image data URL so that neither side exceeds
// maxSide. Values that are not image data URLs (plain links, empty strings) are
// returned unchanged. PNG input stays PNG; everything else is re-encoded as JPEG.
func ShrinkAvatar(value string, maxSide uint) (string, error) {
	mime, payload, err := splitDataURL(value)
	if errors.Is(err, errNotDataURL) {
		return value, nil
	}
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode avatar: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode avatar image: %w", err)
	}

	b := img.Bounds()
	if uint(b.Dx()) <= maxSide && uint(b.Dy()) <= maxSide {
		return value, nil
	}
	thumb := resize.Thumbnail(maxSide, maxSide, img, resize.Lanczos3)

	var buf bytes.Buffer
	if mime == "image/png" {
		err = png.Encode(&buf, thumb)
	} else {
		mime = "image/jpeg"
		err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", fmt.Errorf("encode avatar: %w", err)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func splitDataURL(value string) (mime, payload string, err error) {
	if !strings.HasPrefix(value, "data:image/") {
		return "", "", errNotDataURL
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(value, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", "", fmt.Errorf("malformed avatar data URL")
	}
	return strings.TrimSuffix(header, ";base64"), payload, nil
}
