package nexusweb

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/nexusweb/inquiries"
)

// inboxLimit caps how many inquiries the inbox lists.
const inboxLimit = 200

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderInbox(c, http.StatusOK, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.Log.Warn().Str("ip", ip).Msg("admin login failed")
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if a.Inquiries == nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	id := c.Param("id")
	if err := a.Inquiries.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, inquiries.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	a.Log.Info().Str("id", id).Msg("inquiry deleted")
	if c.Request().Method == http.MethodPost {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=deleted")
	}
	return a.renderInbox(c, http.StatusOK, "deleted")
}

func (a *App) renderInbox(c echo.Context, code int, msg string) error {
	if a.Inquiries == nil {
		return RenderStatus(c, code, a.Views.AdminInbox(nil, 0, "Inquiries are disabled.", CsrfToken(c)))
	}
	ctx := c.Request().Context()
	items, err := a.Inquiries.List(ctx, inboxLimit)
	if err != nil {
		return err
	}
	total, err := a.Inquiries.Count(ctx)
	if err != nil {
		return err
	}
	return RenderStatus(c, code, a.Views.AdminInbox(items, total, msg, CsrfToken(c)))
}
