package nexusweb

import (
	"errors"
	"sync"
	"time"

	"github.com/eringen/nexusweb/content"
)

// ErrPostNotFound is returned when a requested post does not exist or cannot
// be read.
var ErrPostNotFound = errors.New("nexusweb: post not found")

// ContentSource is the read side of the blog content. *content.Loader
// satisfies it.
type ContentSource interface {
	Slugs() []string
	Post(slug string) (content.Post, bool)
	Posts() []content.Post
}

// PostCache holds the sorted post collection in memory for ttl. With a zero
// ttl every call goes straight to the source.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.Post
	loaded  bool
	fetched time.Time
	ttl     time.Duration
	src     ContentSource
}

// NewPostCache creates a PostCache backed by src.
func NewPostCache(src ContentSource, ttl time.Duration) *PostCache {
	return &PostCache{src: src, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.loaded && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.loaded = false
	c.mu.Unlock()
}

// ensureLoaded returns the cached collection after ensuring it is fresh.
// It tries a read lock first and only takes the write lock to reload.
func (c *PostCache) ensureLoaded() []content.Post {
	if c.ttl <= 0 {
		return c.src.Posts()
	}

	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		c.posts = c.src.Posts()
		c.loaded = true
		c.fetched = time.Now()
	}
	return c.posts
}

// ListPosts returns every readable post, newest first. Callers must not
// modify the returned slice.
func (c *PostCache) ListPosts() []content.Post {
	return c.ensureLoaded()
}

// ListMetadata returns ListPosts without bodies.
func (c *PostCache) ListMetadata() []content.PostMetadata {
	return content.Project(c.ensureLoaded())
}

// GetPost returns a single post by slug.
func (c *PostCache) GetPost(slug string) (content.Post, error) {
	if c.ttl <= 0 {
		if p, ok := c.src.Post(slug); ok {
			return p, nil
		}
		return content.Post{}, ErrPostNotFound
	}
	for _, p := range c.ensureLoaded() {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, ErrPostNotFound
}

// Slugs lists every content file's slug, readable or not.
func (c *PostCache) Slugs() []string {
	return c.src.Slugs()
}
