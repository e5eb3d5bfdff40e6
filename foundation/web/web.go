// Package web is a small framework on top of gin that the controllers are
// written against. Handlers receive a *Context and return an error; errors
// produced with NewRequestError carry the HTTP status the boundary should
// answer with.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler is the signature every controller method implements.
type Handler func(c *Context) error

// Middleware wraps a Handler with pre/post behaviour.
type Middleware func(Handler) Handler

type App struct {
	*gin.Engine
	shutdown chan struct{}
}

func NewApp() *App {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &App{
		Engine:   engine,
		shutdown: make(chan struct{}),
	}
}

func (a *App) handle(method, path string, handler Handler, middlewares ...Middleware) {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	a.Engine.Handle(method, path, func(c *gin.Context) {
		ctx := NewContext(c)

		if err := handler(ctx); err != nil {
			logrus.WithFields(logrus.Fields{
				"method": method,
				"path":   path,
			}).Error(err)
		}
	})
}

func (a *App) Get(path string, handler Handler, middlewares ...Middleware) {
	a.handle(http.MethodGet, path, handler, middlewares...)
}

func (a *App) Post(path string, handler Handler, middlewares ...Middleware) {
	a.handle(http.MethodPost, path, handler, middlewares...)
}

func (a *App) Put(path string, handler Handler, middlewares ...Middleware) {
	a.handle(http.MethodPut, path, handler, middlewares...)
}

func (a *App) Patch(path string, handler Handler, middlewares ...Middleware) {
	a.handle(http.MethodPatch, path, handler, middlewares...)
}

func (a *App) Delete(path string, handler Handler, middlewares ...Middleware) {
	a.handle(http.MethodDelete, path, handler, middlewares...)
}
