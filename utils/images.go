package utils

import (
	"encoding/base64"
	"errors"
	"regexp"
)

var dataURIPrefix = regexp.MustCompile(`^data:image/[a-z]+;base64,`)

// DecodeBase64Image converts a Base64 payload into raw bytes, stripping an
// optional data-URI prefix first.
func DecodeBase64Image(imageBase64 string) ([]byte, error) {
	raw := dataURIPrefix.ReplaceAllString(imageBase64, "")
	if raw == "" {
		return nil, errors.New("image data is empty")
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, errors.New("invalid image format")
	}
	if len(decoded) == 0 {
		return nil, errors.New("image data is empty")
	}

	return decoded, nil
}

// EncodeImageBase64 renders stored bytes for the JSON boundary. The original
// format of the image is not tracked, so the prefix is always jpeg.
func EncodeImageBase64(image []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)
}
