package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

// LoadSpec parses and validates the OpenAPI document embedded by the generator.
func LoadSpec() (*openapi3.T, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(openapi3.NewLoader().Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// RequestError is a request body that does not match its schema.
type RequestError struct {
	Schema  string
	Details []string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request does not match %s", e.Schema)
}

// bodyValidator checks JSON request bodies against the schema of the matched operation.
type bodyValidator struct {
	doc *openapi3.T
}

// Middleware runs after routing so the chi route pattern names the OpenAPI path.
// A valid body is handed to the next handler unchanged.
func (v bodyValidator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, schema := v.requestSchema(r)
		if schema == nil {
			next.ServeHTTP(w, r)
			return
		}

		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
		if err := validateBody(name, schema, data); err != nil {
			var reqErr *RequestError
			if errors.As(err, &reqErr) {
				writeError(w, http.StatusBadRequest, reqErr.Error(), reqErr.Details...)
				return
			}
			writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(data))
		next.ServeHTTP(w, r)
	})
}

func (v bodyValidator) requestSchema(r *http.Request) (string, *openapi3.Schema) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || v.doc == nil || v.doc.Paths == nil {
		return "", nil
	}
	item := v.doc.Paths.Find(rctx.RoutePattern())
	if item == nil {
		return "", nil
	}
	op := item.GetOperation(r.Method)
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return "", nil
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return "", nil
	}

	name := op.OperationID
	if ref := media.Schema.Ref; ref != "" {
		name = ref[strings.LastIndex(ref, "/")+1:]
	}
	return name, media.Schema.Value
}

func validateBody(name string, schema *openapi3.Schema, data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &RequestError{Schema: name, Details: []string{err.Error()}}
	}
	if err := schema.VisitJSON(doc, openapi3.MultiErrors()); err != nil {
		return &RequestError{Schema: name, Details: schemaDetails(err)}
	}
	return nil
}

func schemaDetails(err error) []string {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return []string{schemaMessage(err)}
	}
	out := make([]string, 0, len(multi))
	for _, e := range multi {
		out = append(out, schemaDetails(e)...)
	}
	return out
}

func schemaMessage(err error) string {
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		if path := se.JSONPointer(); len(path) > 0 {
			return fmt.Sprintf("/%s: %s", strings.Join(path, "/"), se.Reason)
		}
		return se.Reason
	}
	return err.Error()
}
