package imaging

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// cacheKey identifies a cached image: the raw decode has blur 0 and
// raw set, prepared copies carry their blur radius.
type cacheKey struct {
	path string
	blur float64
	raw  bool
}

// ImageCache provides thread-safe caching of decoded and prepared textures so
// repeated scans of the same file skip disk reads and preprocessing.
//
// Entries remain in memory until removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.LoadPrepared("/path/to/texture.png", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	checker := seam.NewChecker(img, store, logger)
type ImageCache struct {
	mu     sync.RWMutex
	images map[cacheKey]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[cacheKey]image.Image),
	}
}

func (c *ImageCache) lookup(key cacheKey) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[key]
	return img, ok
}

func (c *ImageCache) store(key cacheKey, img image.Image) {
	c.mu.Lock()
	c.images[key] = img
	c.mu.Unlock()
}

// Load retrieves a decoded image from the cache or reads it from disk.
//
// Supported formats are PNG, JPEG, GIF, BMP and TIFF. The image is cached
// using the exact path string provided.
func (c *ImageCache) Load(path string) (image.Image, error) {
	key := cacheKey{path: path, raw: true}
	if img, ok := c.lookup(key); ok {
		return img, nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.store(key, img)
	return img, nil
}

// LoadPrepared returns the image at path converted to RGBA and, when
// blurRadius is positive, smoothed with a Gaussian blur of that radius.
// See Prepare.
func (c *ImageCache) LoadPrepared(path string, blurRadius float64) (*image.RGBA, error) {
	if blurRadius < 0 {
		return nil, fmt.Errorf("blur radius must not be negative, got %g", blurRadius)
	}

	key := cacheKey{path: path, blur: blurRadius}
	if img, ok := c.lookup(key); ok {
		return img.(*image.RGBA), nil
	}

	raw, err := c.Load(path)
	if err != nil {
		return nil, err
	}

	prepared := Prepare(raw, blurRadius)
	c.store(key, prepared)
	return prepared, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[cacheKey]image.Image)
	c.mu.Unlock()
}

// Evict removes every cached copy of the image at path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	for key := range c.images {
		if key.path == path {
			delete(c.images, key)
		}
	}
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded texture.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format implied by the file extension: "png", "jpeg",
	// "gif", "bmp", "tiff" or "unknown".
	Format string `json:"format"`

	// HasAlpha reports whether any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	hasAlpha := false
	if o, ok := img.(interface{ Opaque() bool }); ok {
		hasAlpha = !o.Opaque()
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
