package tui

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// BytesFetcher retrieves raw documents such as card images.
type BytesFetcher interface {
	FetchBytes(ctx context.Context, u *url.URL) ([]byte, error)
}

// ArtLoader turns card images into half-block ANSI art. Results are cached on
// disk per image URL and size.
type ArtLoader struct {
	Fetcher  BytesFetcher
	Root     *url.URL // image sources are relative to the site root
	CacheDir string
	Width    int
	Height   int
}

// Art returns the ANSI rendering of the image at src.
func (a *ArtLoader) Art(ctx context.Context, src string) (string, error) {
	ref, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("invalid image source %q: %w", src, err)
	}
	u := ref
	if a.Root != nil {
		u = a.Root.ResolveReference(ref)
	}

	width, height := a.Width, a.Height
	if width <= 0 {
		width = 40
	}
	if height <= 0 {
		height = 20
	}

	var cachePath string
	if a.CacheDir != "" {
		key := fmt.Sprintf("%s@%dx%d", u.String(), width, height)
		cachePath = filepath.Join(a.CacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))
		if data, err := os.ReadFile(cachePath); err == nil {
			return string(data), nil
		}
	}

	data, err := a.Fetcher.FetchBytes(ctx, u)
	if err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	art := imageToAnsi(img, width, height)

	if cachePath != "" {
		if err := os.MkdirAll(a.CacheDir, 0755); err == nil {
			// A failed cache write only costs a later re-render.
			_ = os.WriteFile(cachePath, []byte(art), 0644)
		}
	}
	return art, nil
}

// imageToAnsi converts an image to truecolor ANSI art using the upper half
// block. Each cell covers a 2x2 pixel square: the top pair blends into the
// foreground, the bottom pair into the background.
func imageToAnsi(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)
	origin := resized.Bounds().Min

	pixel := func(x, y int) colorful.Color {
		// Fully transparent pixels have no colour and render black.
		c, _ := colorful.MakeColor(resized.At(origin.X+x, origin.Y+y))
		return c
	}

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			fr, fg, fb := pixel(x, y).BlendRgb(pixel(x+1, y), 0.5).Clamped().RGB255()
			br, bg, bb := pixel(x, y+1).BlendRgb(pixel(x+1, y+1), 0.5).Clamped().RGB255()
			fmt.Fprintf(&buffer, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", fr, fg, fb, br, bg, bb)
		}
		buffer.WriteString("\x1b[0m\n")
	}

	return strings.TrimSuffix(buffer.String(), "\n")
}
