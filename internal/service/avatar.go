package service

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const avatarSize = 250

// normalizeAvatar decodes an uploaded image and transcodes it to a
// 250x250 PNG (center-cropped cover). An undecodable payload is a
// validation error, not an internal one.
func normalizeAvatar(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image: %v", ErrValidation, err)
	}
	thumb := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode avatar png: %w", err)
	}
	return buf.Bytes(), nil
}
