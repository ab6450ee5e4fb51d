// Package analytics provides privacy-first readership analytics for the
// engine: salted hashes instead of raw IPs, no cookies, bot traffic
// separated from reader traffic.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// salt holds the per-installation random salt for IP hashing, protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

func getSalt() string {
	return salt.value
}

// Visit represents a single page view by a reader.
type Visit struct {
	ID        int64     `json:"-"`
	VisitorID string    `json:"visitor_id"` // anonymous fingerprint hash
	IPHash    string    `json:"-"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	Timestamp time.Time `json:"timestamp"`
}

// VisitRequest is the payload sent from the client beacon.
type VisitRequest struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
}

// PageStat holds view counts for one page path.
type PageStat struct {
	Path    string `json:"path"`
	Views   int    `json:"views"`
	Readers int    `json:"readers"`
}

// Stats aggregates readership over a period.
type Stats struct {
	Period         string     `json:"period"`
	UniqueVisitors int        `json:"unique_visitors"`
	TotalViews     int        `json:"total_views"`
	TopPosts       []PageStat `json:"top_posts"`
}

// HashIP creates a salted SHA-256 hash of an IP address.
func HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(getSalt() + ip))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// GenerateVisitorID creates a salted visitor ID from IP and User-Agent.
func GenerateVisitorID(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(getSalt() + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// IsBot checks if the User-Agent is likely a bot/crawler.
func IsBot(ua string) bool {
	ua = strings.ToLower(ua)
	bots := []string{
		"bot", "crawler", "spider", "crawl", "slurp", "scrape",
		"googlebot", "bingbot", "yandex", "baidu", "duckduckbot",
		"facebookexternalhit", "twitterbot", "linkedinbot",
		"ahrefsbot", "semrushbot", "mj12bot", "dotbot",
	}
	for _, bot := range bots {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}

// CleanReferrer extracts a readable source from a referrer URL.
func CleanReferrer(ref string) string {
	if ref == "" {
		return "Direct"
	}
	refLower := strings.ToLower(ref)
	switch {
	case strings.Contains(refLower, "google."):
		return "Google"
	case strings.Contains(refLower, "bing."):
		return "Bing"
	case strings.Contains(refLower, "duckduckgo."):
		return "DuckDuckGo"
	case strings.Contains(refLower, "github."):
		return "GitHub"
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(refLower, "https://"), "http://")
	trimmed = strings.TrimPrefix(trimmed, "www.")
	if idx := strings.Index(trimmed, "/"); idx > 0 {
		trimmed = trimmed[:idx]
	}
	if trimmed == "" {
		return "Other"
	}
	return trimmed
}
