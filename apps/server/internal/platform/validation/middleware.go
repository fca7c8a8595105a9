package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"
)

// New builds a Gin middleware that validates inbound requests against the
// provided OpenAPI spec bytes. Routes not present in the spec (the editor page,
// health checks) are passed through untouched.
func New(spec []byte, log *slog.Logger) (gin.HandlerFunc, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return func(c *gin.Context) {
		route, pathParams, err := router.FindRoute(c.Request)
		if err != nil {
			c.Next()
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				MultiError:         false,
			},
		}
		if err := openapi3filter.ValidateRequest(c.Request.Context(), input); err != nil {
			log.Debug("request rejected by schema",
				"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message(err)})
			return
		}
		c.Next()
	}, nil
}

// message condenses a kin-openapi validation error into one line for the
// client. The full error is logged at debug level.
func message(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return err.Error()
	}

	var schemaErr *openapi3.SchemaError
	hasSchemaErr := errors.As(err, &schemaErr)

	switch {
	case reqErr.Parameter != nil:
		msg := fmt.Sprintf("invalid %s parameter %q", reqErr.Parameter.In, reqErr.Parameter.Name)
		if hasSchemaErr {
			msg += ": " + schemaErr.Reason
		}
		return msg
	case reqErr.RequestBody != nil:
		if hasSchemaErr {
			return fmt.Sprintf("invalid request body at /%s: %s",
				strings.Join(schemaErr.JSONPointer(), "/"), schemaErr.Reason)
		}
		if reqErr.Reason != "" {
			return "invalid request body: " + reqErr.Reason
		}
		return "invalid request body"
	}
	return reqErr.Error()
}
