// Package download maps app platforms to release assets and opens them.
package download

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"
	"time"
)

var (
	ErrUnknownPlatform = errors.New("invalid platform")
	ErrAssetNotFound   = errors.New("asset not found")
)

// DefaultPlatform is used when a request names no platform.
const DefaultPlatform = "android"

var platformFiles = map[string]string{
	"android": "bijbelquiz-android.apk",
	"ios":     "bijbelquiz-ios.ipa",
	"windows": "bijbelquiz-windows.exe",
	"macos":   "bijbelquiz-macos.dmg",
	"linux":   "bijbelquiz-linux.AppImage",
	"web":     "bijbelquiz-web.zip",
}

// Filename returns the release asset of platform. Platform keys are exact.
func Filename(platform string) (string, error) {
	name, ok := platformFiles[platform]
	if !ok {
		return "", ErrUnknownPlatform
	}
	return name, nil
}

// Platforms lists the known platform keys, sorted.
func Platforms() []string {
	keys := make([]string, 0, len(platformFiles))
	for k := range platformFiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var contentTypes = map[string]string{
	".apk":      "application/vnd.android.package-archive",
	".ipa":      "application/octet-stream",
	".exe":      "application/vnd.microsoft.portable-executable",
	".dmg":      "application/x-apple-diskimage",
	".appimage": "application/vnd.appimage",
	".zip":      "application/zip",
}

// ContentType picks the media type of an asset from its extension.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Asset is an opened release file. Callers must close Body.
type Asset struct {
	Name    string
	Size    int64
	ModTime time.Time
	Body    io.ReadCloser
}

// AssetSource opens release assets by file name.
type AssetSource interface {
	Open(ctx context.Context, name string) (*Asset, error)
}
