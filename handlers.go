package nexusweb

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/nexusweb/inquiries"
	"github.com/eringen/nexusweb/site"
	"github.com/eringen/nexusweb/views"
)

const (
	homeTagline   = "The First Crypto Insurance Alternative"
	contactThanks = "Thanks for reaching out. We will get back to you soon."
)

// meta builds PageMeta for a page titled title at the given path segments.
// An empty title keeps the site name.
func (a *App) meta(title string, segments ...string) PageMeta {
	m := PageMeta{URL: BuildURL(a.Config.URL, segments...)}
	if title != "" {
		m.Title = title + " | " + a.Config.Name
	}
	return m
}

func (a *App) handleHome(c echo.Context) error {
	m := a.meta("")
	m.Title = a.Config.Name + " - " + homeTagline
	return Render(c, a.Views.Home(m))
}

func (a *App) handleProducts(c echo.Context) error {
	return Render(c, a.Views.Products(a.meta("Cover Products", "cover-products")))
}

func (a *App) handleClaims(c echo.Context) error {
	story := site.StoryCarousel().Parse(c.QueryParam("story"))
	return Render(c, a.Views.Claims(a.meta("Claims", "claims"), story))
}

func (a *App) handleContact(c echo.Context) error {
	data := views.ContactData{}
	if a.inquiriesEnabled() {
		data.Native = true
		data.CSRF = CsrfToken(c)
		data.Flash = popFlash(c)
	}
	return Render(c, a.Views.Contact(a.meta("Contact us", "contact"), data))
}

func (a *App) handleContactSubmit(c echo.Context) error {
	if !a.inquiriesEnabled() {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	ip := c.RealIP()
	if !a.contactLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many messages. Try again later.")
	}

	form := views.ContactForm{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Company: c.FormValue("company"),
		Message: c.FormValue("message"),
	}
	inq := inquiries.New(form.Name, form.Email, form.Company, form.Message, ip)
	if err := inq.Validate(); err != nil {
		fields := inquiries.FieldErrors(err)
		if fields == nil {
			return err
		}
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Contact(a.meta("Contact us", "contact"), views.ContactData{
			Native: true,
			CSRF:   CsrfToken(c),
			Form:   form,
			Errors: fields,
		}))
	}

	a.contactLimiter.Record(ip)
	if err := a.Inquiries.Save(c.Request().Context(), inq); err != nil {
		return fmt.Errorf("nexusweb: save inquiry: %w", err)
	}
	if a.Metrics != nil {
		a.Metrics.InquiryStored()
	}
	a.Log.Info().Str("id", inq.ID).Str("ip", ip).Msg("inquiry stored")

	if err := addFlash(c, contactThanks); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/contact/?sent=1")
}

func (a *App) handleBlogIndex(c echo.Context) error {
	return Render(c, a.Views.BlogIndex(a.meta("Blog", "blog"), a.Cache.ListMetadata()))
}

func (a *App) handleBlogPost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	m := a.meta(post.Title, "blog", post.Slug)
	m.Description = post.Excerpt
	return Render(c, a.Views.BlogPost(m, post, a.markdown.Component(post.Content)))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Cache.ListMetadata())
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Cache.ListMetadata())
}

// handleRobots serves robots.txt from the static directory when present,
// otherwise a generated one pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.Config.StaticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	return c.String(http.StatusOK, robotsTxt(a.Config.URL))
}

func robotsTxt(base string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n\n")
	b.WriteString("Sitemap: " + strings.TrimRight(base, "/") + "/sitemap.xml\n")
	return b.String()
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		if rerr := RenderStatus(c, http.StatusNotFound, a.Views.NotFound()); rerr != nil {
			a.Log.Error().Err(rerr).Msg("render not found page")
		}
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Msg("server error")
		if rerr := RenderStatus(c, code, a.Views.ServerError()); rerr != nil {
			a.Log.Error().Err(rerr).Msg("render server error page")
			_ = c.NoContent(code)
		}
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
