package middleware

import (
	"path"
	"strings"
)

var docsAssetExts = map[string]bool{
	".html": true, ".css": true, ".js": true, ".json": true,
	".png": true, ".ico": true, ".svg": true,
}

// PublicPaths is the set of routes served without a token: exact paths, plus static files
// directly inside the docs directories. There are no prefix wildcards, so /docs/../entries
// or /docs/sub/x.js are not public.
type PublicPaths struct {
	exact    map[string]bool
	docsDirs []string
}

// NewPublicPaths builds a policy. Each docs dir must end with a slash.
func NewPublicPaths(exact []string, docsDirs []string) *PublicPaths {
	p := &PublicPaths{exact: make(map[string]bool, len(exact))}
	for _, e := range exact {
		p.exact[e] = true
	}
	p.docsDirs = append(p.docsDirs, docsDirs...)
	return p
}

// DefaultPublicPaths is the policy for the API served at the root and under each prefix.
func DefaultPublicPaths(prefixes ...string) *PublicPaths {
	base := []string{"/health", "/ready", "/auth/signup", "/auth/login"}
	// Metrics and docs are mounted at the root only.
	exact := []string{"/", "/metrics", "/docs", "/docs/"}
	docs := []string{"/docs/"}
	for _, prefix := range append([]string{""}, prefixes...) {
		if prefix != "" {
			exact = append(exact, prefix, prefix+"/")
		}
		for _, b := range base {
			exact = append(exact, prefix+b)
		}
	}
	return NewPublicPaths(exact, docs)
}

// Allows reports whether p may be served without a token.
func (pp *PublicPaths) Allows(p string) bool {
	if pp == nil {
		return false
	}
	if pp.exact[p] {
		return true
	}
	if strings.Contains(p, "..") {
		return false
	}
	for _, dir := range pp.docsDirs {
		name, ok := strings.CutPrefix(p, dir)
		if !ok || name == "" || strings.Contains(name, "/") {
			continue
		}
		if docsAssetExts[strings.ToLower(path.Ext(name))] {
			return true
		}
	}
	return false
}
