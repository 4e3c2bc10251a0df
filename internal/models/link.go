package models

import "strings"

// ShortLink represents a short code and the destination it redirects to.
// ShortURL is the identity of a link; OriginalURL is the only editable field
// in the recent links list.
type ShortLink struct {
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

// Code returns the short code of the link.
func (l ShortLink) Code() string {
	return CodeFromShortURL(l.ShortURL)
}

// CodeFromShortURL returns the path segment after the first slash of a short
// URL as returned by the backend ("/abc123" -> "abc123"). A value without a
// slash is already a bare code and is returned unchanged.
func CodeFromShortURL(shortURL string) string {
	parts := strings.Split(shortURL, "/")
	if len(parts) < 2 {
		return shortURL
	}
	return parts[1]
}

// ShortPath returns shortURL as an absolute path with exactly one leading slash.
func ShortPath(shortURL string) string {
	return "/" + strings.TrimLeft(shortURL, "/")
}

// QualifiedURL joins the service origin and a short URL with exactly one slash
// between them, whether or not either side carries one.
func QualifiedURL(origin, shortURL string) string {
	return strings.TrimRight(origin, "/") + ShortPath(shortURL)
}

// IndexOf returns the position of the link identified by shortURL, or -1.
func IndexOf(links []ShortLink, shortURL string) int {
	for i := range links {
		if links[i].ShortURL == shortURL {
			return i
		}
	}
	return -1
}
