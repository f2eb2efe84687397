package nexusweb

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inquiryApp(t *testing.T, password string) *App {
	t.Helper()
	cfg := newTestSite(t).config()
	cfg.InquiriesEnabled = true
	cfg.SessionSecret = testSecret
	cfg.AdminPassword = password
	return newTestApp(t, cfg)
}

// csrfCookie loads path once and returns the CSRF cookie it sets.
func csrfCookie(t *testing.T, a *App, path string) *http.Cookie {
	t.Helper()
	rec := do(a, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	c := cookie(rec, "_csrf")
	require.NotNil(t, c, "csrf cookie")
	return c
}

func validInquiry(csrf string) url.Values {
	return url.Values{
		"_csrf":   {csrf},
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"company": {"Analytical Engines"},
		"message": {"We would like cover for our vault."},
	}
}

func TestContactShowsNativeForm(t *testing.T) {
	a := inquiryApp(t, "")
	rec := do(a, http.MethodGet, "/contact/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<form method="post" action="/contact/"`)
	assert.NotContains(t, rec.Body.String(), "<iframe")
}

func TestContactSubmitStoresAndRedirects(t *testing.T) {
	a := inquiryApp(t, "")
	csrf := csrfCookie(t, a, "/contact/")

	rec := do(a, http.MethodPost, "/contact/", validInquiry(csrf.Value), csrf)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contact/?sent=1", rec.Header().Get(echo.HeaderLocation))

	sess := cookie(rec, sessionName)
	require.NotNil(t, sess, "session cookie carries the flash")

	ctx := context.Background()
	n, err := a.Inquiries.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	items, err := a.Inquiries.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", items[0].Name)
	assert.Equal(t, "192.0.2.1", items[0].IP)

	page := do(a, http.MethodGet, "/contact/?sent=1", nil, csrf, sess)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), contactThanks)

	// the flash is shown once
	next := cookie(page, sessionName)
	require.NotNil(t, next)
	again := do(a, http.MethodGet, "/contact/", nil, csrf, next)
	assert.NotContains(t, again.Body.String(), contactThanks)

	metrics := do(a, http.MethodGet, "/metrics", nil).Body.String()
	assert.Contains(t, metrics, "nexusweb_inquiries_total 1")
}

func TestContactSubmitValidationErrors(t *testing.T) {
	a := inquiryApp(t, "")
	csrf := csrfCookie(t, a, "/contact/")

	form := validInquiry(csrf.Value)
	form.Set("email", "not-an-email")
	form.Set("message", "short")
	rec := do(a, http.MethodPost, "/contact/", form, csrf)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="not-an-email"`)
	assert.Contains(t, body, `value="Ada Lovelace"`)
	assert.Contains(t, body, "Please enter a valid email address.")
	assert.Contains(t, body, "Message must be between 10 and 5000 characters.")

	n, err := a.Inquiries.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContactSubmitRequiresCSRF(t *testing.T) {
	a := inquiryApp(t, "")
	rec := do(a, http.MethodPost, "/contact/", validInquiry("forged"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestContactSubmitRateLimited(t *testing.T) {
	a := inquiryApp(t, "")
	csrf := csrfCookie(t, a, "/contact/")

	for i := 0; i < 5; i++ {
		rec := do(a, http.MethodPost, "/contact/", validInquiry(csrf.Value), csrf)
		require.Equal(t, http.StatusSeeOther, rec.Code, "submission %d", i+1)
	}
	rec := do(a, http.MethodPost, "/contact/", validInquiry(csrf.Value), csrf)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestContactSubmitDisabled(t *testing.T) {
	a := newTestApp(t, newTestSite(t).config())
	csrf := csrfCookie(t, a, "/contact/")
	rec := do(a, http.MethodPost, "/contact/", validInquiry(csrf.Value), csrf)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
