package infrastructure

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"adminConsole/internal/modules/console/application/port"
)

type operation string

const (
	opList    operation = "list"
	opDetail  operation = "detail"
	opCreate  operation = "create"
	opUpdate  operation = "update"
	opDelete  operation = "delete"
	opToggle  operation = "toggle"
	opRestore operation = "restore"
)

type pathBuilder func(string) (string, error)

type route struct {
	method string
	path   pathBuilder
}

// entityEndpoint lists the backend routes of one domain. Each domain keeps the verbs its
// backend expects; they are deliberately not harmonised.
type entityEndpoint struct {
	routes map[operation]route
}

var entityEndpoints = map[string]entityEndpoint{
	"categories": {
		routes: map[operation]route{
			opList:    {http.MethodGet, staticPathBuilder("/api/v1/admin/categories")},
			opDetail:  {http.MethodGet, resourcePathBuilder("/api/v1/admin/categories")},
			opCreate:  {http.MethodPost, staticPathBuilder("/api/v1/admin/categories")},
			opUpdate:  {http.MethodPut, resourcePathBuilder("/api/v1/admin/categories")},
			opDelete:  {http.MethodDelete, resourcePathBuilder("/api/v1/admin/categories")},
			opToggle:  {http.MethodPatch, formattedPathBuilder("/api/v1/admin/categories/%s/toggle-status")},
			opRestore: {http.MethodPatch, formattedPathBuilder("/api/v1/admin/categories/%s/restore")},
		},
	},
	"products": {
		routes: map[operation]route{
			opList:   {http.MethodGet, staticPathBuilder("/api/v1/admin/products")},
			opDetail: {http.MethodGet, resourcePathBuilder("/api/v1/admin/products")},
			opCreate: {http.MethodPost, staticPathBuilder("/api/v1/admin/products/create")},
			opUpdate: {http.MethodPost, formattedPathBuilder("/api/v1/admin/products/update/%s")},
			opDelete: {http.MethodPost, formattedPathBuilder("/api/v1/admin/products/delete/%s")},
			opToggle: {http.MethodPut, formattedPathBuilder("/api/v1/admin/products/%s/status")},
		},
	},
	"orders": {
		routes: map[operation]route{
			opList:   {http.MethodGet, staticPathBuilder("/api/v1/admin/orders")},
			opDetail: {http.MethodGet, resourcePathBuilder("/api/v1/admin/orders")},
			opUpdate: {http.MethodPut, formattedPathBuilder("/api/v1/admin/orders/%s/status")},
			opDelete: {http.MethodDelete, resourcePathBuilder("/api/v1/admin/orders")},
		},
	},
	"vendors": {
		routes: map[operation]route{
			opList:   {http.MethodGet, staticPathBuilder("/api/v1/admin/vendors")},
			opDetail: {http.MethodGet, resourcePathBuilder("/api/v1/admin/vendors")},
			opCreate: {http.MethodPost, staticPathBuilder("/api/v1/admin/vendors")},
			opUpdate: {http.MethodPut, resourcePathBuilder("/api/v1/admin/vendors")},
			opDelete: {http.MethodDelete, resourcePathBuilder("/api/v1/admin/vendors")},
			opToggle: {http.MethodPost, formattedPathBuilder("/api/v1/admin/vendors/%s/toggle")},
		},
	},
	"users": {
		routes: map[operation]route{
			opList:   {http.MethodGet, staticPathBuilder("/api/v1/admin/users")},
			opDetail: {http.MethodGet, resourcePathBuilder("/api/v1/admin/users")},
			opUpdate: {http.MethodPut, resourcePathBuilder("/api/v1/admin/users")},
			opDelete: {http.MethodDelete, resourcePathBuilder("/api/v1/admin/users")},
			opToggle: {http.MethodPost, formattedPathBuilder("/api/v1/admin/users/%s/block-toggle")},
		},
	},
	"addresses": {
		routes: map[operation]route{
			opList:   {http.MethodGet, staticPathBuilder("/api/v1/admin/addresses")},
			opDetail: {http.MethodGet, resourcePathBuilder("/api/v1/admin/addresses")},
			opCreate: {http.MethodPost, staticPathBuilder("/api/v1/admin/addresses")},
			opUpdate: {http.MethodPut, resourcePathBuilder("/api/v1/admin/addresses")},
			opDelete: {http.MethodDelete, resourcePathBuilder("/api/v1/admin/addresses")},
		},
	},
}

func staticPathBuilder(path string) pathBuilder {
	trimmed := strings.TrimSpace(path)
	return func(string) (string, error) {
		if trimmed == "" {
			return "", fmt.Errorf("missing path configuration")
		}
		return trimmed, nil
	}
}

func formattedPathBuilder(format string) pathBuilder {
	trimmed := strings.TrimSpace(format)
	return func(value string) (string, error) {
		identifier := strings.TrimSpace(value)
		if identifier == "" {
			return "", port.ErrNotFound
		}
		return fmt.Sprintf(trimmed, url.PathEscape(identifier)), nil
	}
}

func resourcePathBuilder(base string) pathBuilder {
	trimmed := strings.TrimSpace(base)
	return func(value string) (string, error) {
		identifier := strings.TrimSpace(value)
		if identifier == "" {
			return "", port.ErrNotFound
		}
		return strings.TrimRight(trimmed, "/") + "/" + url.PathEscape(identifier), nil
	}
}
