package main

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// Artwork is a processed album-art image ready for the markup line.
type Artwork struct {
	Encoded string // base64 payload for the image= attribute
	Color   string // accent color hex extracted from the image, may be empty
}

// cacheKey names the cache file for an art URL.
func cacheKey(artURL string) string {
	sum := md5.Sum([]byte(artURL))
	return hex.EncodeToString(sum[:])
}

// newArtClient builds the HTTP client used for artwork downloads.
func newArtClient(cfg Config) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.HTTP.RetryMax
	client.HTTPClient.Timeout = time.Duration(cfg.HTTP.TimeoutMs) * time.Millisecond
	client.Logger = nil
	return client
}

// fallbackArtURL rebuilds the artwork URL against the fallback CDN. The art
// URL the player hands out is known to 404; the image ID in its last path
// segment still resolves on the CDN.
func fallbackArtURL(base, artURL string) string {
	if base == "" {
		return ""
	}
	u, err := url.Parse(artURL)
	if err != nil {
		return ""
	}
	id := path.Base(u.Path)
	if id == "" || id == "." || id == "/" {
		return ""
	}
	return base + id
}

// loadArtwork returns the artwork for artURL, preferring the local cache over
// a download. Downloads are resized and cached for the next poll.
func loadArtwork(cfg Config, artURL string, wantColor bool) (Artwork, error) {
	if artURL == "" {
		return Artwork{}, fmt.Errorf("no artwork URL")
	}

	cachePath := filepath.Join(cfg.Artwork.CacheDir, cacheKey(artURL))
	if data, err := os.ReadFile(cachePath); err == nil {
		return finishArtwork(string(data), wantColor), nil
	}

	raw, err := fetchArtwork(cfg, artURL)
	if err != nil {
		return Artwork{}, err
	}

	encoded, err := processArtwork(raw, cfg.Artwork.Width)
	if err != nil {
		return Artwork{}, err
	}

	if err := os.MkdirAll(cfg.Artwork.CacheDir, 0o755); err == nil {
		if err := os.WriteFile(cachePath, []byte(encoded), 0o644); err != nil {
			debugf("caching artwork: %v", err)
		}
	} else {
		debugf("creating artwork cache dir: %v", err)
	}

	return finishArtwork(encoded, wantColor), nil
}

// finishArtwork optionally derives the accent color from the encoded image.
func finishArtwork(encoded string, wantColor bool) Artwork {
	art := Artwork{Encoded: encoded}
	if !wantColor {
		return art
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return art
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return art
	}
	if c, err := extractAccentColor(img); err == nil {
		art.Color = c
	}
	return art
}

// fetchArtwork downloads the image bytes, falling back to the CDN mirror when
// the primary URL does not resolve.
func fetchArtwork(cfg Config, artURL string) ([]byte, error) {
	client := newArtClient(cfg)

	data, err := fetchURL(client, artURL)
	if err == nil {
		return data, nil
	}

	fallback := fallbackArtURL(cfg.Artwork.FallbackBaseURL, artURL)
	if fallback == "" || fallback == artURL {
		return nil, err
	}
	debugf("artwork fetch failed (%v), trying fallback %s", err, fallback)

	data, ferr := fetchURL(client, fallback)
	if ferr != nil {
		return nil, fmt.Errorf("artwork fetch failed: %w (fallback: %v)", err, ferr)
	}
	return data, nil
}

func fetchURL(client *retryablehttp.Client, u string) ([]byte, error) {
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("fetching %s: status %d", u, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}
	return data, nil
}

// processArtwork decodes, downscales and base64-encodes image bytes. Payloads
// that do not decode as an image are encoded as-is; the host may still be
// able to render them.
func processArtwork(data []byte, width int) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return base64.StdEncoding.EncodeToString(data), nil
	}

	if width > 0 && img.Bounds().Dx() > width {
		img = resize.Resize(uint(width), 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding artwork: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// extractAccentColor picks a readable color from the image for the ticker
// line. Samples every few pixels, keeps colors that are neither washed out
// nor too dark, and scores by saturation; falls back to K-means when the
// sampling finds nothing usable.
func extractAccentColor(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}

	bounds := img.Bounds()
	colorMap := make(map[uint32]int)
	const sampleRate = 5

	for y := bounds.Min.Y; y < bounds.Max.Y; y += sampleRate {
		for x := bounds.Min.X; x < bounds.Max.X; x += sampleRate {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 32768 {
				continue
			}
			rgb := (r >> 8 << 16) | (g >> 8 << 8) | (b >> 8)
			colorMap[rgb]++
		}
	}

	var bestRGB uint32
	bestScore := -1.0
	for rgb, count := range colorMap {
		rf := float64(rgb>>16&0xff) / 255.0
		gf := float64(rgb>>8&0xff) / 255.0
		bf := float64(rgb&0xff) / 255.0

		max := rf
		if gf > max {
			max = gf
		}
		if bf > max {
			max = bf
		}
		min := rf
		if gf < min {
			min = gf
		}
		if bf < min {
			min = bf
		}

		lightness := (max + min) / 2.0
		var saturation float64
		if max != min {
			if lightness > 0.5 {
				saturation = (max - min) / (2.0 - max - min)
			} else {
				saturation = (max - min) / (max + min)
			}
		}

		if lightness < 0.3 || lightness > 0.85 || saturation < 0.25 {
			continue
		}

		score := saturation*2.5 + lightness*1.5 + float64(count)/1000.0
		if score > bestScore {
			bestScore = score
			bestRGB = rgb
		}
	}

	if bestScore < 0 {
		colors, err := prominentcolor.Kmeans(img)
		if err != nil || len(colors) == 0 {
			return "", fmt.Errorf("no suitable colors found")
		}
		c := colors[0]
		return fmt.Sprintf("#%02x%02x%02x", c.Color.R, c.Color.G, c.Color.B), nil
	}

	return fmt.Sprintf("#%02x%02x%02x", bestRGB>>16&0xff, bestRGB>>8&0xff, bestRGB&0xff), nil
}
