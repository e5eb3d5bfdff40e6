package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context wraps gin's context and accumulates param/query parse errors so a
// controller can read several values and validate once.
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs []string
	queryErrs []string
}

func NewContext(c *gin.Context) *Context {
	return &Context{
		Context: c,
		Ctx:     c.Request.Context(),
	}
}

// GetParam reads a path parameter as the given kind. Parse failures are
// collected and surfaced by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, fmt.Sprintf("param %q must be an integer", name))
			return 0
		}
		return v
	case reflect.String:
		return value
	default:
		c.paramErrs = append(c.paramErrs, fmt.Sprintf("param %q has unsupported kind", name))
		return nil
	}
}

func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}
	return NewRequestError(errors.New(strings.Join(c.paramErrs, "; ")), http.StatusBadRequest)
}

// GetQueryFunc reads an optional query value as a pointer of the given kind.
// A missing value yields a typed nil so `, ok` assertions in controllers stay
// truthful about presence.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Sprintf("query %q must be an integer", name))
			return (*int)(nil)
		}
		return &v
	case reflect.String:
		if !ok {
			return (*string)(nil)
		}
		return &value
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Sprintf("query %q must be a boolean", name))
			return (*bool)(nil)
		}
		return &v
	default:
		c.queryErrs = append(c.queryErrs, fmt.Sprintf("query %q has unsupported kind", name))
		return nil
	}
}

func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}
	return NewRequestError(errors.New(strings.Join(c.queryErrs, "; ")), http.StatusBadRequest)
}

// BindFunc binds the JSON body into v and checks that the named struct fields
// were provided (non-nil pointers / non-zero values).
func (c *Context) BindFunc(v interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(v); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request body"), http.StatusBadRequest)
	}

	if len(requiredFields) == 0 {
		return nil
	}

	rv := reflect.ValueOf(v).Elem()
	var missing []string
	for _, name := range requiredFields {
		field := rv.FieldByName(name)
		if !field.IsValid() || field.IsZero() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return NewRequestError(errors.Errorf("required fields missing: %s", strings.Join(missing, ", ")), http.StatusBadRequest)
	}

	return nil
}

// Respond writes the payload as JSON with the given status.
func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError writes an error response. Request errors keep their status,
// everything else is a 500. The original error is returned so the router can
// log it.
func (c *Context) RespondError(err error) error {
	if webErr, ok := IsRequestError(err); ok {
		c.JSON(webErr.Status, map[string]interface{}{
			"error":  webErr.Error(),
			"fields": webErr.Fields,
			"status": false,
		})
		return err
	}

	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":  "internal server error",
		"status": false,
	})
	return err
}
