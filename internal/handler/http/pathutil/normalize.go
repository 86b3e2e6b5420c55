package pathutil

import (
	"regexp"
	"strings"
)

// UnmatchedRoute is the label shared by every path that is not a known route.
const UnmatchedRoute = "unmatched"

// operationalRoutes are the fixed endpoints registered next to the resource.
var operationalRoutes = []string{"/health", "/ready", "/live", "/metrics"}

// Routes maps request paths onto a bounded set of route labels for metrics
// and span names. The resource routes follow its collection path, so a
// resource renamed to /feeds is labelled /feeds and /feeds/:id.
type Routes struct {
	collection string
	item       *regexp.Regexp
	itemLabel  string
	static     map[string]struct{}
}

// NewRoutes builds the labels for collectionPath (for example "/news").
func NewRoutes(collectionPath string) *Routes {
	collection := strings.TrimSuffix(collectionPath, "/")
	static := make(map[string]struct{}, len(operationalRoutes)+1)
	static[collection] = struct{}{}
	for _, p := range operationalRoutes {
		static[p] = struct{}{}
	}
	return &Routes{
		collection: collection,
		item:       regexp.MustCompile(`^` + regexp.QuoteMeta(collection) + `/[^/]+$`),
		itemLabel:  collection + "/:id",
		static:     static,
	}
}

// Label returns the route label for path. Query strings and a trailing slash
// are ignored, any item id (well-formed or not) folds into the :id template,
// Swagger assets share one label, and everything else is UnmatchedRoute.
func (rt *Routes) Label(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	if _, ok := rt.static[path]; ok {
		return path
	}
	if rt.item.MatchString(path) {
		return rt.itemLabel
	}
	if path == "/swagger" || strings.HasPrefix(path, "/swagger/") {
		return "/swagger/*"
	}
	return UnmatchedRoute
}
