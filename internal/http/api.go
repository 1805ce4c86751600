package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cert-portfolio/internal/domain"
	"cert-portfolio/internal/portfolio"
	"cert-portfolio/internal/service"
)

const defaultSearchLimit = 10

type Config struct {
	AllowOrigin string
	StaticDir   string
	Logger      *logrus.Logger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	certificates service.CertificateService
	search       service.SearchService
	cfg          Config
	logger       *logrus.Logger
}

func NewHandler(users service.UserService, certificates service.CertificateService, search service.SearchService, cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}
	return &Handler{
		users:        users,
		certificates: certificates,
		search:       search,
		cfg:          cfg,
		logger:       cfg.Logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestIDMiddleware(), accessLogMiddleware(h.logger), corsMiddleware(h.cfg.AllowOrigin))

	api := router.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/users", h.listUsers)
		api.GET("/users/:userId", h.getUser)
		api.GET("/users/:userId/certificates", h.listCertificates)
		api.GET("/users/:userId/certificates/:certId", h.getCertificate)
		api.GET("/users/:userId/stats", h.getStatistics)
		api.GET("/users/:userId/analytics", h.getAnalytics)
		api.GET("/users/:userId/platforms", h.listPlatforms)
		api.GET("/search", h.searchAll)
	}

	router.NoRoute(h.notFound())
}

// envelope is the response body shared by every API endpoint.
type envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Error      string              `json:"error,omitempty"`
	Timestamp  string              `json:"timestamp"`
	Pagination *portfolio.PageMeta `json:"pagination,omitempty"`
	Filters    *filtersResponse    `json:"filters,omitempty"`
	Metadata   gin.H               `json:"metadata,omitempty"`
}

type filtersResponse struct {
	portfolio.Filter
	Sort portfolio.SortKey `json:"sort"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{
		Success:   true,
		Data:      data,
		Timestamp: timestamp(time.Now()),
	})
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// statusFor maps domain error kinds onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, status int, err error) {
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, envelope{
		Success:   false,
		Error:     msg,
		Timestamp: timestamp(time.Now()),
	})
}

func (h *Handler) health(c *gin.Context) {
	ok(c, gin.H{"status": "ok"})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	ok(c, users)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	ok(c, user)
}

type certificateListQuery struct {
	Platform       string `form:"platform"`
	Category       string `form:"category"`
	Search         string `form:"search"`
	Sort           string `form:"sort"`
	Limit          int    `form:"limit"`
	Offset         int    `form:"offset"`
	IncludeExpired *bool  `form:"includeExpired"`
}

func (h *Handler) listCertificates(c *gin.Context) {
	var q certificateListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	page, err := h.certificates.ListCertificates(c.Request.Context(), c.Param("userId"), service.CertificateQuery{
		Filter: portfolio.Filter{
			Platform:       strings.TrimSpace(q.Platform),
			Category:       strings.TrimSpace(q.Category),
			Search:         strings.TrimSpace(q.Search),
			IncludeExpired: q.IncludeExpired,
		},
		Sort:   portfolio.SortKey(strings.ToLower(strings.TrimSpace(q.Sort))),
		Offset: q.Offset,
		Limit:  q.Limit,
	})
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, envelope{
		Success:    true,
		Data:       page.Certificates,
		Timestamp:  timestamp(page.GeneratedAt),
		Pagination: &page.Pagination,
		Filters:    &filtersResponse{Filter: page.Filters, Sort: page.Sort},
		Metadata: gin.H{
			"userId":     page.UserID,
			"statistics": page.Statistics,
		},
	})
}

func (h *Handler) getCertificate(c *gin.Context) {
	view, err := h.certificates.GetCertificate(c.Request.Context(), c.Param("userId"), c.Param("certId"))
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	ok(c, view)
}

func (h *Handler) getStatistics(c *gin.Context) {
	stats, err := h.certificates.Statistics(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	ok(c, stats)
}

func (h *Handler) getAnalytics(c *gin.Context) {
	analytics, err := h.certificates.Analytics(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	ok(c, analytics)
}

func (h *Handler) listPlatforms(c *gin.Context) {
	platforms, err := h.certificates.Platforms(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	ok(c, platforms)
}

type searchQuery struct {
	Query string `form:"q"`
	Type  string `form:"type" binding:"omitempty,oneof=all users certificates"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (h *Handler) searchAll(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if q.Type == "" {
		q.Type = string(portfolio.ScopeAll)
	}
	if q.Limit == 0 {
		q.Limit = defaultSearchLimit
	}

	results, err := h.search.Search(c.Request.Context(), q.Query, portfolio.Scope(q.Type), q.Limit)
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, envelope{
		Success:   true,
		Data:      results,
		Timestamp: timestamp(time.Now()),
		Metadata: gin.H{
			"query": strings.TrimSpace(q.Query),
			"type":  q.Type,
			"limit": q.Limit,
			"count": len(results),
		},
	})
}

// notFound answers unknown API paths with a JSON error and serves static
// files for everything else when a static directory is configured.
func (h *Handler) notFound() gin.HandlerFunc {
	var files http.Handler
	if h.cfg.StaticDir != "" {
		files = http.FileServer(gin.Dir(h.cfg.StaticDir, false))
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if files == nil || path == "/api" || strings.HasPrefix(path, "/api/") {
			h.fail(c, http.StatusNotFound, errors.New("route not found"))
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
