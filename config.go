package typelore

import "time"

// SiteConfig holds all configuration for a typelore site.
type SiteConfig struct {
	Name        string // Site name (default "Typelore")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Default author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/typelore.db")
	ContentDir   string // On-disk content directory; empty means embedded corpus only

	AnalyticsEnabled      bool   // Enable readership analytics (default false)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	AdminPassword string // Required when admin is enabled: login password
	SessionSecret string // Required when admin is enabled: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Typelore"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/typelore.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
