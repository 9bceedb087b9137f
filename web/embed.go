package web

import "embed"

// Pages embeds top-level HTML pages.
//
//go:embed home.html
var Pages embed.FS

// Static embeds static assets.
//
//go:embed static/**/*
var Static embed.FS
