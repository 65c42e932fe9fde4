// Package router groups gin routes by domain under a versioned API prefix.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultVersion is the API version served by the finance routes
const DefaultVersion = "v1"

// BasePath returns the prefix routes of version are mounted under
func BasePath(version string) string {
	if version == "" {
		version = DefaultVersion
	}
	return "/api/" + version
}

// Mount attaches groups to engine under BasePath(version). The middleware
// runs for every route of the groups but not for the rest of the engine.
func Mount(engine *gin.Engine, version string, middleware []gin.HandlerFunc, groups ...*Group) *gin.RouterGroup {
	api := engine.Group(BasePath(version), middleware...)
	for _, g := range groups {
		g.mount(api)
	}
	return api
}

// Group collects routes sharing a path prefix and middleware. Routes are
// attached to gin only when the group is mounted.
type Group struct {
	prefix     string
	middleware []gin.HandlerFunc
	mounts     []func(*gin.RouterGroup)
}

// NewGroup starts a group. An empty prefix puts its routes directly on the parent.
func NewGroup(prefix string) *Group {
	return &Group{prefix: prefix}
}

// Use adds middleware for the routes and subgroups of g
func (g *Group) Use(middleware ...gin.HandlerFunc) *Group {
	g.middleware = append(g.middleware, middleware...)
	return g
}

// Handle registers a route. The GET, POST and other helpers wrap it.
func (g *Group) Handle(method, path string, handlers ...gin.HandlerFunc) *Group {
	g.mounts = append(g.mounts, func(rg *gin.RouterGroup) {
		rg.Handle(method, path, handlers...)
	})
	return g
}

func (g *Group) GET(path string, h ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodGet, path, h...)
}

func (g *Group) POST(path string, h ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodPost, path, h...)
}

func (g *Group) PUT(path string, h ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodPut, path, h...)
}

func (g *Group) PATCH(path string, h ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodPatch, path, h...)
}

func (g *Group) DELETE(path string, h ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodDelete, path, h...)
}

// Sub returns a nested group mounted beneath g
func (g *Group) Sub(prefix string) *Group {
	child := NewGroup(prefix)
	g.mounts = append(g.mounts, child.mount)
	return child
}

func (g *Group) mount(parent *gin.RouterGroup) {
	rg := parent.Group(g.prefix, g.middleware...)
	for _, m := range g.mounts {
		m(rg)
	}
}
