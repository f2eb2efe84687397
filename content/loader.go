package content

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog"
)

// Failure kinds reported through the failure hook.
const (
	FailureDirUnreadable  = "dir_unreadable"
	FailureFileUnreadable = "file_unreadable"
	FailureUnparsable     = "unparsable"
)

// Loader reads posts from a directory of content files.
type Loader struct {
	fsys          fs.FS
	dir           string
	ext           string
	defaultAuthor string
	log           zerolog.Logger
	onFailure     func(kind string)
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtension sets the recognized file extension (default ".mdx").
func WithExtension(ext string) Option {
	return func(l *Loader) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		l.ext = ext
	}
}

// WithDefaultAuthor overrides DefaultAuthor.
func WithDefaultAuthor(author string) Option {
	return func(l *Loader) {
		l.defaultAuthor = author
	}
}

// WithLogger sets the logger used for diagnostic notices.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// WithFailureHook registers fn to be called once per degraded read.
func WithFailureHook(fn func(kind string)) Option {
	return func(l *Loader) {
		l.onFailure = fn
	}
}

// NewLoader returns a Loader reading from dir on the local filesystem.
func NewLoader(dir string, opts ...Option) *Loader {
	l := NewLoaderFS(os.DirFS(dir), opts...)
	l.dir = dir
	return l
}

// NewLoaderFS returns a Loader reading from the root of fsys.
func NewLoaderFS(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{
		fsys:          fsys,
		dir:           ".",
		ext:           ".mdx",
		defaultAuthor: DefaultAuthor,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.ext == "" {
		l.ext = ".mdx"
	}
	return l
}

func (l *Loader) fail(kind string) {
	if l.onFailure != nil {
		l.onFailure(kind)
	}
}

// Slugs lists one slug per content file, in filename order. An unreadable
// directory yields an empty slice.
func (l *Loader) Slugs() []string {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		l.log.Warn().Err(err).Str("dir", l.dir).Msg("content directory unreadable")
		l.fail(FailureDirUnreadable)
		return []string{}
	}
	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, l.ext) {
			continue
		}
		slug := strings.TrimSuffix(name, l.ext)
		if slug == "" {
			continue
		}
		slugs = append(slugs, slug)
	}
	return slugs
}

// Post resolves a single post. It reports false when the file is missing,
// unreadable or has malformed front matter.
func (l *Loader) Post(slug string) (Post, bool) {
	if !validSlug(slug) {
		return Post{}, false
	}
	raw, err := fs.ReadFile(l.fsys, slug+l.ext)
	if errors.Is(err, fs.ErrNotExist) {
		l.log.Debug().Str("slug", slug).Msg("content file not found")
		return Post{}, false
	}
	if err != nil {
		l.log.Error().Err(err).Str("slug", slug).Msg("content file unreadable")
		l.fail(FailureFileUnreadable)
		return Post{}, false
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		l.log.Error().Err(err).Str("slug", slug).Msg("content front matter unparsable")
		l.fail(FailureUnparsable)
		return Post{}, false
	}

	author := fm.Author
	if author == "" {
		author = l.defaultAuthor
	}
	tags := []string(fm.Tags)
	if tags == nil {
		tags = []string{}
	}
	return Post{
		Slug:          slug,
		Title:         fm.Title,
		Date:          fm.Date,
		FeaturedImage: fm.FeaturedImage,
		Excerpt:       fm.Excerpt,
		Author:        author,
		Tags:          tags,
		Content:       string(body),
	}, true
}

// Posts resolves every slug, drops failures and sorts newest first.
func (l *Loader) Posts() []Post {
	slugs := l.Slugs()
	posts := make([]Post, 0, len(slugs))
	for _, slug := range slugs {
		if p, ok := l.Post(slug); ok {
			posts = append(posts, p)
		}
	}
	SortByDate(posts)
	return posts
}

// Metadata is Posts without bodies.
func (l *Loader) Metadata() []PostMetadata {
	return Project(l.Posts())
}

// SortByDate orders posts newest first. Posts whose date does not parse keep
// their relative order and sort after every dated post.
func SortByDate(posts []Post) {
	type entry struct {
		post Post
		at   time.Time
		ok   bool
	}
	entries := make([]entry, len(posts))
	for i, p := range posts {
		at, ok := ParseDate(p.Date)
		entries[i] = entry{post: p, at: at, ok: ok}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.at.After(b.at)
	})
	for i := range entries {
		posts[i] = entries[i].post
	}
}

func validSlug(slug string) bool {
	if slug == "" || strings.HasPrefix(slug, ".") {
		return false
	}
	if strings.ContainsAny(slug, `/\`) || strings.Contains(slug, "..") {
		return false
	}
	return fs.ValidPath(slug)
}
