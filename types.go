package nexusweb

import (
	"github.com/a-h/templ"

	"github.com/eringen/nexusweb/content"
	"github.com/eringen/nexusweb/inquiries"
	"github.com/eringen/nexusweb/views"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta = views.PageMeta

// ViewFuncs holds the components the handlers render. Any field left nil
// falls back to the built-in page from package views.
type ViewFuncs struct {
	Home        func(meta PageMeta) templ.Component
	Products    func(meta PageMeta) templ.Component
	Claims      func(meta PageMeta, story int) templ.Component
	Contact     func(meta PageMeta, data views.ContactData) templ.Component
	BlogIndex   func(meta PageMeta, posts []content.PostMetadata) templ.Component
	BlogPost    func(meta PageMeta, post content.Post, body templ.Component) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
	AdminLogin  func(showError bool, csrfToken string) templ.Component
	AdminInbox  func(items []inquiries.Inquiry, total int, message, csrfToken string) templ.Component
}

// DefaultViews returns ViewFuncs backed by v.
func DefaultViews(v *views.Views) ViewFuncs {
	return ViewFuncs{
		Home:        v.Home,
		Products:    v.Products,
		Claims:      v.Claims,
		Contact:     v.Contact,
		BlogIndex:   v.BlogIndex,
		BlogPost:    v.BlogPost,
		NotFound:    v.NotFound,
		ServerError: v.ServerError,
		AdminLogin:  v.AdminLogin,
		AdminInbox:  v.AdminInbox,
	}
}

func (vf *ViewFuncs) fill(d ViewFuncs) {
	if vf.Home == nil {
		vf.Home = d.Home
	}
	if vf.Products == nil {
		vf.Products = d.Products
	}
	if vf.Claims == nil {
		vf.Claims = d.Claims
	}
	if vf.Contact == nil {
		vf.Contact = d.Contact
	}
	if vf.BlogIndex == nil {
		vf.BlogIndex = d.BlogIndex
	}
	if vf.BlogPost == nil {
		vf.BlogPost = d.BlogPost
	}
	if vf.NotFound == nil {
		vf.NotFound = d.NotFound
	}
	if vf.ServerError == nil {
		vf.ServerError = d.ServerError
	}
	if vf.AdminLogin == nil {
		vf.AdminLogin = d.AdminLogin
	}
	if vf.AdminInbox == nil {
		vf.AdminInbox = d.AdminInbox
	}
}
