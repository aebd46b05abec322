package out

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	accountout "sdu/internal/modules/account/port/out"
	apperrors "sdu/internal/platform/errors"
)

const maxAvatarBytes = 1 << 20

// FileAvatarEncoder turns a local image into the data URL the profile
// endpoint stores inline.
type FileAvatarEncoder struct{}

var _ accountout.AvatarEncoder = FileAvatarEncoder{}

func NewFileAvatarEncoder() FileAvatarEncoder { return FileAvatarEncoder{} }

func (FileAvatarEncoder) Encode(_ context.Context, path string) (string, error) {
	mime := ""
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mime = "image/png"
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	case ".webp":
		mime = "image/webp"
	default:
		return "", fmt.Errorf("%w: unsupported avatar format %q", apperrors.ErrInvalidInput, filepath.Ext(path))
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if len(raw) > maxAvatarBytes {
		return "", fmt.Errorf("%w: avatar exceeds %d bytes", apperrors.ErrInvalidInput, maxAvatarBytes)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
