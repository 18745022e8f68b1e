// Package ui embeds the script and stylesheet used by the binding view documents.
package ui

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var embedded embed.FS

// StaticFiles holds view.js and view.css at its root.
var StaticFiles, _ = fs.Sub(embedded, "static")
