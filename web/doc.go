// Package web provides the crawl-facing collaborators: sitemap discovery,
// the page render session, and HTML to markdown conversion.
//
// The Renderer interface models one shared render session for a whole crawl
// batch; Session is the bundled HTTP implementation. Backends that execute
// JavaScript (headless browsers) can implement the same interface.
package web
