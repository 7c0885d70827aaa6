package controller

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"product-catalog/app/middleware"
	"product-catalog/service"
)

// SessionCookie is the cookie carrying the visitor session ID
const SessionCookie = "catalog_session"

// CatalogController handles HTTP requests for catalog pages
type CatalogController struct {
	catalogService *service.CatalogService
	secureCookie   bool
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *service.CatalogService, secureCookie bool) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		secureCookie:   secureCookie,
	}
}

// session returns the visitor session, issuing a cookie for new sessions
func (c *CatalogController) session(w http.ResponseWriter, r *http.Request) *service.Session {
	var id string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		id = cookie.Value
	}

	sess, created := c.catalogService.Sessions().Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   c.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
		log.Ctx(r.Context()).Debug().Str("session", sess.ID).Msg("session: created")
	}
	return sess
}

// ShowCatalog handles GET /catalog?page=N
// Without a page parameter the visitor's current page is shown.
func (c *CatalogController) ShowCatalog(w http.ResponseWriter, r *http.Request) {
	sess := c.session(w, r)
	label := strings.TrimSpace(r.URL.Query().Get("page"))

	view, err := c.catalogService.ShowPage(sess, label)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("page", label).Msg("ShowCatalog: invalid page")
	}
	status := statusFor(err)
	if view.FetchError != nil {
		status = statusFor(view.FetchError)
	}
	writePage(w, r, status, view)
}

// SelectPage handles POST /catalog/page with form field page
func (c *CatalogController) SelectPage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	sess := c.session(w, r)
	label := r.PostForm.Get("page")

	view, err := c.catalogService.ShowPage(sess, label)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("page", label).Msg("SelectPage: invalid page")
	}
	if err == nil && view.FetchError == nil && !middleware.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/catalog", http.StatusSeeOther)
		return
	}

	status := statusFor(err)
	if view.FetchError != nil {
		status = statusFor(view.FetchError)
	}
	writePage(w, r, status, view)
}

// PrintCatalog handles GET /catalog/print?page=N
// Renders a page with default card state for printing, independent of the session.
func (c *CatalogController) PrintCatalog(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	view, err := c.catalogService.PrintView(page)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Int("page", page).Msg("PrintCatalog: cannot render page")
		if view.FetchError != nil {
			writePage(w, r, statusFor(err), view)
			return
		}
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writePage(w, r, http.StatusOK, view)
}
