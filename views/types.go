package views

// SiteConfig holds the site-wide settings templates need.
type SiteConfig struct {
	Name           string
	URL            string
	Description    string
	AppURL         string // "Open App" and post CTA target
	ContactFormURL string // third-party form embedded on /contact/
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image
}
