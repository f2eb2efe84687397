package nexusweb

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	thumbMinWidth     = 16
	thumbMaxWidth     = 1600
	thumbDefaultWidth = 800
	jpegQuality       = 80
	maxThumbEntries   = 512
)

var errThumbNotFound = errors.New("nexusweb: thumbnail source not found")

var thumbExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}

// clampWidth parses the w query value. Missing or invalid values give the
// default; everything else is clamped to the supported range.
func clampWidth(s string) int {
	w, err := strconv.Atoi(s)
	if err != nil {
		return thumbDefaultWidth
	}
	return max(thumbMinWidth, min(w, thumbMaxWidth))
}

// resizeImage decodes an image from src, scales it down to width if it is
// wider, and encodes it as JPEG.
func resizeImage(src io.Reader, width int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > width {
		newH := max(1, h*width/w)
		dst := image.NewRGBA(image.Rect(0, 0, width, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

type thumbKey struct {
	path  string
	width int
}

type thumbEntry struct {
	modTime time.Time
	data    []byte
}

// thumbCache keeps resized images in memory keyed by source path and width.
// An entry is recomputed when its source file changes.
type thumbCache struct {
	root  string
	mu    sync.RWMutex
	items map[thumbKey]thumbEntry
}

func newThumbCache(root string) *thumbCache {
	return &thumbCache{root: root, items: make(map[thumbKey]thumbEntry)}
}

// resolve maps a slash-separated path below the static root onto the
// filesystem. Traversal and unsupported extensions are rejected.
func (t *thumbCache) resolve(rel string) (string, error) {
	if strings.Contains(rel, "..") || strings.Contains(rel, "\\") {
		return "", errThumbNotFound
	}
	clean := path.Clean("/" + rel)
	if !thumbExts[strings.ToLower(path.Ext(clean))] {
		return "", errThumbNotFound
	}
	return filepath.Join(t.root, filepath.FromSlash(clean)), nil
}

func (t *thumbCache) get(rel string, width int) ([]byte, error) {
	file, err := t.resolve(rel)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return nil, errThumbNotFound
	}

	key := thumbKey{path: file, width: width}
	t.mu.RLock()
	e, ok := t.items[key]
	t.mu.RUnlock()
	if ok && e.modTime.Equal(info.ModTime()) {
		return e.data, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, errThumbNotFound
	}
	defer f.Close()
	data, err := resizeImage(f, width)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	if len(t.items) >= maxThumbEntries {
		t.items = make(map[thumbKey]thumbEntry)
	}
	t.items[key] = thumbEntry{modTime: info.ModTime(), data: data}
	t.mu.Unlock()
	return data, nil
}

func (a *App) handleThumb(c echo.Context) error {
	rel := c.Param("*")
	data, err := a.thumbs.get(rel, clampWidth(c.QueryParam("w")))
	if err != nil {
		if errors.Is(err, errThumbNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		a.Log.Warn().Err(err).Str("path", rel).Msg("thumbnail failed")
		return echo.NewHTTPError(http.StatusUnsupportedMediaType)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
