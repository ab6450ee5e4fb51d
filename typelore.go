// Package typelore is a publishing engine for a Markdown blog, built with
// Go, Echo, and templ. Posts are Markdown files with YAML front-matter;
// the engine ingests them into SQLite, lints their editorial properties,
// and serves rendered HTML, an RSS feed, and a sitemap.
//
// Users provide their own templ components via the ViewFuncs struct, or use
// the defaults from the views package; typelore handles handler logic,
// middleware, and database operations.
package typelore

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/typelore/typelore/analytics"
)

// ViewFuncs holds user-provided templ components that the engine calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home             func(posts []Post, activeTag string, tags []string, activeCategory string, categories []string, siteURL string) templ.Component
	HomePartial      func(posts []Post, activeTag string, tags []string, activeCategory string, categories []string, siteURL string) templ.Component
	BlogSection      func(posts []Post, activeTag string, tags []string, activeCategory string, categories []string) templ.Component
	Post             func(post Post, posts []Post, siteURL string) templ.Component
	PostPartial      func(post Post, posts []Post, siteURL string) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(posts []Post, message string, csrfToken string) templ.Component
	AdminFormPartial func(post Post, csrfToken string) templ.Component
	AdminImages      func(images []Image, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central typelore application. It wires together the store,
// cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a new typelore App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, ingests the content corpus, sets up
// middleware and routes, and starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("typelore: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("typelore: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("typelore: init store: %w", err)
	}
	a.Store = store

	// Embedded corpus first, then the on-disk content dir so local edits
	// to the same slug win.
	if err := a.ingestContent(); err != nil {
		return err
	}

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("typelore: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		if err := analytics.InitSalt(analyticsStore); err != nil {
			return fmt.Errorf("typelore: init analytics salt: %w", err)
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) ingestContent() error {
	report, err := a.Store.Ingest(EmbeddedCorpus())
	if err != nil {
		return fmt.Errorf("typelore: ingest embedded corpus: %w", err)
	}
	logIngest(a.Echo.Logger, report)

	if a.Config.ContentDir != "" {
		diskReport, err := a.Store.Ingest(os.DirFS(a.Config.ContentDir))
		if err != nil {
			return fmt.Errorf("typelore: ingest %s: %w", a.Config.ContentDir, err)
		}
		logIngest(a.Echo.Logger, diskReport)
	}
	return nil
}

func logIngest(logger echo.Logger, report IngestReport) {
	for _, issue := range report.Issues {
		logger.Warnf("lint: %s", issue)
	}
	logger.Infof("ingested %d posts", len(report.Saved))
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.POST("/admin/unpublish/:slug/", a.handleAdminUnpublish)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)

	// Analytics routes
	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		handler := analytics.NewHandler(a.analyticsStore)
		e.POST("/api/analytics/visit", handler.RecordVisit)
		e.GET("/admin/analytics/", func(c echo.Context) error {
			if !IsAdmin(c) {
				return c.Redirect(http.StatusSeeOther, "/admin/")
			}
			return handler.StatsJSON(c)
		})
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("typelore: required environment variable %s is not set", key)
	}
	return v
}
