// Package views renders the site's pages. Layouts are html/template files
// embedded in the binary; each page is exposed as a templ.Component so
// handlers render every view the same way.
package views

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/nexusweb/content"
	"github.com/eringen/nexusweb/inquiries"
	"github.com/eringen/nexusweb/site"
)

//go:embed templates
var templateFS embed.FS

// Page names, one per file under templates/pages.
const (
	PageHome        = "home"
	PageProducts    = "products"
	PageClaims      = "claims"
	PageContact     = "contact"
	PageBlogIndex   = "blog_index"
	PageBlogPost    = "blog_post"
	PageNotFound    = "not_found"
	PageServerError = "server_error"
	PageAdminLogin  = "admin_login"
	PageAdminInbox  = "admin_inbox"
)

var pageNames = []string{
	PageHome, PageProducts, PageClaims, PageContact, PageBlogIndex,
	PageBlogPost, PageNotFound, PageServerError, PageAdminLogin, PageAdminInbox,
}

var pages = parsePages()

func parsePages() map[string]*template.Template {
	base := template.Must(template.New("base").Funcs(funcs).ParseFS(templateFS,
		"templates/base.html", "templates/partials/*.html"))
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t := template.Must(base.Clone())
		out[name] = template.Must(t.ParseFS(templateFS, "templates/pages/"+name+".html"))
	}
	return out
}

// page is the value every layout executes against.
type page struct {
	Site      SiteConfig
	Meta      PageMeta
	Nav       site.Nav
	JSONLD    template.JS
	MainClass string
	Year      int
	Data      any
}

// Views renders pages for one site configuration.
type Views struct {
	cfg SiteConfig
}

// New returns Views for cfg.
func New(cfg SiteConfig) *Views {
	return &Views{cfg: cfg}
}

func (v *Views) page(meta PageMeta, background string, data any) page {
	if meta.Title == "" {
		meta.Title = v.cfg.Name
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	if meta.Description == "" {
		meta.Description = v.cfg.Description
	}
	return page{
		Site: v.cfg,
		Meta: meta,
		Nav:  site.NewNav(background, v.cfg.AppURL),
		Year: time.Now().Year(),
		Data: data,
	}
}

func render(name string, p page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := pages[name]
		if !ok {
			return fmt.Errorf("views: unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "base", p)
	})
}

// HomeData feeds the landing page.
type HomeData struct {
	Typewriter     site.Typewriter
	TypewriterJSON string
	Stats          []site.Stat
	Testimonials   []site.Testimonial
	TrustedBy      []site.Image
	HowItWorks     []site.Step
	WhyUs          []site.Pillar
	AsSeenOn       []site.Image
}

// Home renders the landing page.
func (v *Views) Home(meta PageMeta) templ.Component {
	tw := site.NewTypewriter()
	p := v.page(meta, site.BackgroundTransparent, HomeData{
		Typewriter:     tw,
		TypewriterJSON: typewriterJSON(tw),
		Stats:          site.HomeStats,
		Testimonials:   site.Testimonials,
		TrustedBy:      site.TrustedBy,
		HowItWorks:     site.HowItWorks,
		WhyUs:          site.WhyUs,
		AsSeenOn:       site.AsSeenOn,
	})
	p.JSONLD = WebsiteJSONLD(v.cfg)
	return render(PageHome, p)
}

func typewriterJSON(tw site.Typewriter) string {
	b, err := json.Marshal(struct {
		Phrases  []string `json:"phrases"`
		Interval int64    `json:"interval"`
		Pause    int64    `json:"pause"`
	}{tw.Phrases, tw.Interval.Milliseconds(), tw.Pause.Milliseconds()})
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ProductsData feeds the products page.
type ProductsData struct {
	Products []site.Product
}

// Products renders the cover products page.
func (v *Views) Products(meta PageMeta) templ.Component {
	return render(PageProducts, v.page(meta, site.BackgroundTransparent, ProductsData{Products: site.Products}))
}

// ClaimsData feeds the claims page. Current is the story shown without
// JavaScript.
type ClaimsData struct {
	Total   string
	Steps   []site.Step
	Process []site.Feature
	Stories []site.Story
	Current int
	Prev    int
	Next    int
	Dots    []int
}

// Claims renders the claims page with story selected in the carousel.
func (v *Views) Claims(meta PageMeta, story int) templ.Component {
	c := site.StoryCarousel()
	story = c.Clamp(story)
	return render(PageClaims, v.page(meta, site.BackgroundTransparent, ClaimsData{
		Total:   site.ClaimsPaid,
		Steps:   site.ClaimSteps,
		Process: site.ClaimsProcess,
		Stories: site.Stories,
		Current: story,
		Prev:    c.Prev(story),
		Next:    c.Next(story),
		Dots:    c.Indexes(),
	}))
}

// ContactForm is the state of the native contact form.
type ContactForm struct {
	Name    string
	Email   string
	Company string
	Message string
}

// ContactData feeds the contact page. Native selects the built-in form over
// the embedded third-party form at FormURL.
type ContactData struct {
	Native  bool
	FormURL string
	CSRF    string
	Flash   string
	Form    ContactForm
	Errors  map[string]string
}

// Contact renders the contact page.
func (v *Views) Contact(meta PageMeta, data ContactData) templ.Component {
	if data.FormURL == "" {
		data.FormURL = v.cfg.ContactFormURL
	}
	return render(PageContact, v.page(meta, site.BackgroundTransparent, data))
}

// BlogIndexData feeds the blog listing.
type BlogIndexData struct {
	Posts []content.PostMetadata
}

// BlogIndex renders the post listing, or an empty state when there are no
// posts.
func (v *Views) BlogIndex(meta PageMeta, posts []content.PostMetadata) templ.Component {
	return render(PageBlogIndex, v.page(meta, site.BackgroundBlue, BlogIndexData{Posts: posts}))
}

// BlogPostData feeds a single post page.
type BlogPostData struct {
	Post content.Post
	Body template.HTML
}

// BlogPost renders a post with its body produced by body.
func (v *Views) BlogPost(meta PageMeta, post content.Post, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if body != nil {
			if err := body.Render(ctx, &buf); err != nil {
				return fmt.Errorf("views: render post body: %w", err)
			}
		}
		if meta.OGType == "" {
			meta.OGType = "article"
		}
		if meta.Description == "" {
			meta.Description = post.Excerpt
		}
		if meta.Image == "" && post.FeaturedImage != "" {
			meta.Image = absolute(v.cfg.URL, asset(post.FeaturedImage))
		}
		p := v.page(meta, site.BackgroundBlue, BlogPostData{
			Post: post,
			Body: template.HTML(buf.String()),
		})
		p.JSONLD = BlogPostingJSONLD(v.cfg, post)
		return render(PageBlogPost, p).Render(ctx, w)
	})
}

// NotFound renders the styled 404 page.
func (v *Views) NotFound() templ.Component {
	return render(PageNotFound, v.page(PageMeta{Title: "Page not found | " + v.cfg.Name}, site.BackgroundBlue, nil))
}

// ServerError renders the styled 500 page.
func (v *Views) ServerError() templ.Component {
	return render(PageServerError, v.page(PageMeta{Title: "Error | " + v.cfg.Name}, site.BackgroundBlue, nil))
}

// AdminLoginData feeds the inbox login form.
type AdminLoginData struct {
	ShowError bool
	CSRF      string
}

// AdminLogin renders the inbox login form.
func (v *Views) AdminLogin(showError bool, csrfToken string) templ.Component {
	return render(PageAdminLogin, v.page(PageMeta{Title: "Login | " + v.cfg.Name}, site.BackgroundBlue,
		AdminLoginData{ShowError: showError, CSRF: csrfToken}))
}

// AdminInboxData feeds the inquiries inbox.
type AdminInboxData struct {
	Items   []inquiries.Inquiry
	Total   int
	Message string
	CSRF    string
}

// AdminInbox renders stored inquiries.
func (v *Views) AdminInbox(items []inquiries.Inquiry, total int, message, csrfToken string) templ.Component {
	return render(PageAdminInbox, v.page(PageMeta{Title: "Inquiries | " + v.cfg.Name}, site.BackgroundBlue,
		AdminInboxData{Items: items, Total: total, Message: message, CSRF: csrfToken}))
}
