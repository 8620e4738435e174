// Package ez is the action registration layer: one declaration per route,
// with binding, role checks and error mapping handled uniformly so handlers
// stay as plain input -> output functions over the services.
package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"roomdesk/internal/service"
	"roomdesk/internal/transport/http/middleware"
	resp "roomdesk/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Binder selects how the request is decoded into the action input.
type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // read c.Param / c.Query yourself
)

// AErr carries a business code alongside the message for the envelope.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Action declares one route. I is the bound input, O the envelope payload.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Roles   []string // restrict to these roles; empty means any authenticated caller
	Handler func(c *gin.Context, in *I) (O, error)
}

// Register mounts the action on the group backing e.
func Register[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if len(a.Roles) > 0 {
			role := c.GetString(middleware.KeyRole)
			ok := false
			for _, r := range a.Roles {
				if role == r {
					ok = true
					break
				}
			}
			if !ok {
				c.JSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			c.JSON(http.StatusOK, toEnvelope(err))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// Raw mounts a handler that writes the response body itself (CSV export,
// OAuth redirects).
func (e EZ) Raw(method, path string, h gin.HandlerFunc) {
	e.g.Handle(strings.ToUpper(method), path, h)
}

func toEnvelope(err error) resp.Resp {
	var ae *AErr
	if errors.As(err, &ae) {
		return resp.Error(ae.Code, ae.Error())
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		return resp.Error(resp.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return resp.Error(resp.CodeUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return resp.Error(resp.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrInvalid):
		return resp.Error(resp.CodeBadRequest, err.Error())
	}
	return resp.Error(resp.CodeServerError, err.Error())
}
