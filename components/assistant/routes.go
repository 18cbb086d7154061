package assistant

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Route is one registered endpoint.
type Route struct {
	Method string
	Path   string
}

type route struct {
	Route
	handle gin.HandlerFunc
}

func (c *Component) routes() []route {
	return []route{
		{Route{http.MethodGet, "/openapi.yaml"}, c.getContract},
		{Route{http.MethodGet, "/catalog"}, c.listCatalog},
		{Route{http.MethodPost, "/sessions"}, c.createSession},
		{Route{http.MethodGet, "/sessions/:id"}, c.getSession},
		{Route{http.MethodDelete, "/sessions/:id"}, c.deleteSession},
		{Route{http.MethodGet, "/sessions/:id/page"}, c.getPage},
		{Route{http.MethodGet, "/sessions/:id/report"}, c.getReport},
		{Route{http.MethodPut, "/sessions/:id/report"}, c.editReport},
		{Route{http.MethodPost, "/sessions/:id/instances"}, c.addInstance},
		{Route{http.MethodDelete, "/sessions/:id/instances/:key"}, c.removeInstance},
		{Route{http.MethodPut, "/sessions/:id/sections/:target/answers/:field"}, c.setAnswer},
		{Route{http.MethodPost, "/sessions/:id/sections/:target/answers/:field/toggle"}, c.toggleOption},
		{Route{http.MethodPut, "/sessions/:id/sections/:target/text"}, c.editSection},
		{Route{http.MethodDelete, "/sessions/:id/sections/:target/text"}, c.resetSection},
		{Route{http.MethodPut, "/sessions/:id/timeline/:slot"}, c.setTime},
		{Route{http.MethodPost, "/sessions/:id/timeline/:slot/stamp"}, c.stampTime},
	}
}

// Routes lists the endpoints relative to the base path.
func (c *Component) Routes() []Route {
	all := c.routes()
	out := make([]Route, 0, len(all))
	for _, r := range all {
		out = append(out, r.Route)
	}
	return out
}

// RegisterRoutes mounts the component on router under the base path.
func (c *Component) RegisterRoutes(router gin.IRouter) {
	group := router.Group(basePath(c.opts.BasePath))
	for _, r := range c.routes() {
		group.Handle(r.Method, r.Path, r.handle)
	}
}

func basePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}
