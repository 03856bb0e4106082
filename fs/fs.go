// Package appfs embeds the static assets shipped with the binaries:
// the mock collections' fixtures and the email templates.
package appfs

import "embed"

//go:embed fixtures/*.json templates/email/*
var FS embed.FS

const (
	FixturesDir       = "fixtures"
	EmailTemplatesDir = "templates/email"
)
