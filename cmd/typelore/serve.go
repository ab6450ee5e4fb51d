package main

import (
	"fmt"

	"github.com/spf13/pflag"

	typelore "github.com/typelore/typelore"
	"github.com/typelore/typelore/views"
)

func runServe(args []string) error {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	addr := flags.String("addr", typelore.EnvOr("ADDR", ":3000"), "listen address")
	contentDir := flags.String("content", typelore.EnvOr("CONTENT_DIR", ""), "content directory layered over the embedded corpus")
	dbPath := flags.String("db", typelore.EnvOr("DATABASE_PATH", "data/typelore.db"), "SQLite database path")
	analyticsOn := flags.Bool("analytics", false, "enable readership analytics")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := typelore.SiteConfig{
		Name:        typelore.EnvOr("SITE_NAME", "Typelore"),
		URL:         typelore.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: typelore.EnvOr("SITE_DESCRIPTION", "Long-form notes on Scala's type system"),
		Author:      typelore.EnvOr("SITE_AUTHOR", ""),

		Addr:         *addr,
		DatabasePath: *dbPath,
		ContentDir:   *contentDir,

		AnalyticsEnabled: *analyticsOn,

		AdminPassword: typelore.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: typelore.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  typelore.EnvOr("COOKIE_SECURE", "") == "true",
	}

	app := typelore.New(cfg, views.Default(cfg))
	defer app.Close()

	fmt.Printf("typelore serving %s on %s\n", cfg.Name, cfg.Addr)
	return app.Start()
}
