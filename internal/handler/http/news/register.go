package news

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"news-api/internal/common/pagination"
	"news-api/internal/handler/http/respond"
	"news-api/internal/resource"
)

// ErrMethodNotAllowed is written for operations the resource does not enable.
var ErrMethodNotAllowed = errors.New("method not allowed")

// Register registers the News routes enabled by res on mux.
//
//	GET  /{short_name}        list (collection get)
//	POST /{short_name}        create (collection post)
//	GET  /{short_name}/{id}   get (item get)
//	PUT  /{short_name}/{id}   update (item put, disabled by default)
//
// Any other method on these paths answers 405 with an Allow header.
func Register(mux *http.ServeMux, svc Service, res resource.Config, paginationCfg pagination.Config, logger *slog.Logger) {
	collection := res.CollectionPath()
	item := collection + "/{id}"

	var collectionMethods, itemMethods []string

	if res.AllowsCollection(resource.OpGet) {
		mux.Handle("GET "+collection, ListHandler{
			Svc:           svc,
			Resource:      res,
			PaginationCfg: paginationCfg,
			Logger:        logger,
		})
		collectionMethods = append(collectionMethods, http.MethodGet, http.MethodHead)
	}
	if res.AllowsCollection(resource.OpPost) {
		mux.Handle("POST "+collection, CreateHandler{Svc: svc, Resource: res, Logger: logger})
		collectionMethods = append(collectionMethods, http.MethodPost)
	}
	if res.AllowsItem(resource.OpGet) {
		mux.Handle("GET "+item, GetHandler{Svc: svc, Resource: res, Logger: logger})
		itemMethods = append(itemMethods, http.MethodGet, http.MethodHead)
	}
	if res.AllowsItem(resource.OpPut) {
		mux.Handle("PUT "+item, UpdateHandler{Svc: svc, Resource: res, Logger: logger})
		itemMethods = append(itemMethods, http.MethodPut)
	}

	mux.Handle(collection, methodNotAllowed(collectionMethods))
	mux.Handle(item, methodNotAllowed(itemMethods))
}

func methodNotAllowed(allowed []string) http.Handler {
	allow := strings.Join(allowed, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allow != "" {
			w.Header().Set("Allow", allow)
		}
		respond.SafeError(w, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
	})
}
