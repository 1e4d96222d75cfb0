package main

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, generateTestImage(width, height, c)); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// TestCacheKey tests cache file naming
func TestCacheKey(t *testing.T) {
	a := cacheKey("https://i.scdn.co/image/one")
	b := cacheKey("https://i.scdn.co/image/two")

	if a == b {
		t.Error("different URLs must map to different cache keys")
	}
	assertEqual(t, a, cacheKey("https://i.scdn.co/image/one"), "key is stable")
	assertEqual(t, len(a), 32, "md5 hex length")
}

// TestFallbackArtURL tests rebuilding the URL against the fallback CDN
func TestFallbackArtURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		artURL   string
		expected string
	}{
		{
			name:     "image id is reused",
			base:     "https://i.scdn.co/image/",
			artURL:   "https://open.spotify.com/image/ab67616d000",
			expected: "https://i.scdn.co/image/ab67616d000",
		},
		{
			name:     "no base disables the fallback",
			base:     "",
			artURL:   "https://open.spotify.com/image/ab67616d000",
			expected: "",
		},
		{
			name:     "empty path yields nothing",
			base:     "https://i.scdn.co/image/",
			artURL:   "https://open.spotify.com",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, fallbackArtURL(tt.base, tt.artURL), tt.expected, "fallback URL")
		})
	}
}

// TestProcessArtwork tests decode/resize/encode
func TestProcessArtwork(t *testing.T) {
	t.Run("small image passes through", func(t *testing.T) {
		encoded, err := processArtwork(pngBytes(t, 10, 10, color.RGBA{255, 0, 0, 255}), 400)
		assertNoError(t, err)

		data, err := base64.StdEncoding.DecodeString(encoded)
		assertNoError(t, err)
		img, _, err := image.Decode(bytes.NewReader(data))
		assertNoError(t, err)
		assertEqual(t, img.Bounds().Dx(), 10, "width unchanged")
	})

	t.Run("large image is downscaled", func(t *testing.T) {
		encoded, err := processArtwork(pngBytes(t, 640, 640, color.RGBA{0, 128, 0, 255}), 400)
		assertNoError(t, err)

		data, err := base64.StdEncoding.DecodeString(encoded)
		assertNoError(t, err)
		img, _, err := image.Decode(bytes.NewReader(data))
		assertNoError(t, err)
		assertEqual(t, img.Bounds().Dx(), 400, "width after resize")
	})

	t.Run("undecodable payload is encoded as-is", func(t *testing.T) {
		raw := []byte("definitely not an image")
		encoded, err := processArtwork(raw, 400)
		assertNoError(t, err)
		assertEqual(t, encoded, base64.StdEncoding.EncodeToString(raw), "raw passthrough")
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := processArtwork(nil, 400)
		assertError(t, err, "empty image data")
	})
}

// TestLoadArtworkCacheHit tests that a cached file short-circuits the fetch
func TestLoadArtworkCacheHit(t *testing.T) {
	cfg := testConfig()
	cfg.Artwork.CacheDir = t.TempDir()
	cfg.Artwork.FallbackBaseURL = ""

	artURL := "https://example.invalid/image/cached" // never fetched
	cached := base64.StdEncoding.EncodeToString(pngBytes(t, 10, 10, color.RGBA{0, 0, 255, 255}))
	path := filepath.Join(cfg.Artwork.CacheDir, cacheKey(artURL))
	assertNoError(t, os.WriteFile(path, []byte(cached), 0o644))

	art, err := loadArtwork(cfg, artURL, false)
	assertNoError(t, err)
	assertEqual(t, art.Encoded, cached, "cache content returned verbatim")
}

// TestLoadArtworkFetchAndCache tests download, processing and cache write
func TestLoadArtworkFetchAndCache(t *testing.T) {
	payload := pngBytes(t, 20, 20, color.RGBA{200, 50, 50, 255})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Artwork.CacheDir = filepath.Join(t.TempDir(), "artwork") // created on demand
	cfg.Artwork.FallbackBaseURL = ""
	cfg.HTTP.RetryMax = 0

	artURL := srv.URL + "/image/fresh"
	art, err := loadArtwork(cfg, artURL, false)
	assertNoError(t, err)
	if art.Encoded == "" {
		t.Fatal("expected encoded artwork")
	}

	// Second call must come from the cache even with the server gone
	srv.Close()
	again, err := loadArtwork(cfg, artURL, false)
	assertNoError(t, err)
	assertEqual(t, again.Encoded, art.Encoded, "cache round trip")
}

// TestLoadArtworkFallback tests the CDN fallback on a failing primary URL
func TestLoadArtworkFallback(t *testing.T) {
	payload := pngBytes(t, 20, 20, color.RGBA{50, 50, 200, 255})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/primary/gone" {
			http.NotFound(w, r)
			return
		}
		w.Write(payload)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Artwork.CacheDir = t.TempDir()
	cfg.Artwork.FallbackBaseURL = srv.URL + "/cdn/"
	cfg.HTTP.RetryMax = 0

	art, err := loadArtwork(cfg, srv.URL+"/primary/gone", false)
	assertNoError(t, err)
	if art.Encoded == "" {
		t.Fatal("expected artwork from the fallback URL")
	}
}

// TestLoadArtworkNoURL tests the empty-URL edge case
func TestLoadArtworkNoURL(t *testing.T) {
	cfg := testConfig()
	cfg.Artwork.CacheDir = t.TempDir()

	_, err := loadArtwork(cfg, "", false)
	assertError(t, err, "empty artwork URL")
}

// TestExtractAccentColor tests accent color extraction
func TestExtractAccentColor(t *testing.T) {
	t.Run("saturated image", func(t *testing.T) {
		img := generateTestImage(100, 100, color.RGBA{200, 40, 40, 255})
		c, err := extractAccentColor(img)
		assertNoError(t, err)
		if !isValidHexColor(c) {
			t.Errorf("invalid hex color: %s", c)
		}
	})

	t.Run("nil image", func(t *testing.T) {
		_, err := extractAccentColor(nil)
		assertError(t, err, "nil image")
	})
}
