// Package fetch retrieves source material for extraction: web pages
// converted from HTML to Markdown and local files read from disk.
package fetch
