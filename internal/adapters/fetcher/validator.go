package fetcher

import (
	"bytes"
	"encoding/json"
	"mime"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
	"go.trai.ch/catalog/internal/core/domain"
)

var markupMediaTypes = map[string]struct{}{
	"text/html":             {},
	"application/xhtml+xml": {},
	"text/xml":              {},
	"application/xml":       {},
}

// ValidateResponse classifies a manifest response and decodes its body.
//
// Markup is detected before the status is inspected, so a 404 page served as HTML is
// reported as unexpected content rather than a plain request failure.
func ValidateResponse(path string, status int, contentType string, body []byte) (any, error) {
	if isMarkup(contentType, body) {
		return nil, &domain.UnexpectedContentError{
			Path:        path,
			StatusCode:  status,
			ContentType: contentType,
			Snippet:     domain.Snippet(body),
		}
	}

	if status < 200 || status > 299 {
		return nil, &domain.FetchError{
			Path:       path,
			StatusCode: status,
			Snippet:    domain.Snippet(body),
		}
	}

	return Decode(path, body)
}

// Decode parses body into nil, bool, json.Number, string, []any or domain.Object values.
// Objects keep their members in document order.
func Decode(path string, body []byte) (any, error) {
	if !gjson.ValidBytes(body) {
		return nil, &domain.MalformedJSONError{
			Path:    path,
			Snippet: domain.Snippet(body),
			Cause:   parseError(body),
		}
	}
	return toValue(gjson.ParseBytes(body)), nil
}

func toValue(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return json.Number(strings.TrimSpace(r.Raw))
	case gjson.String:
		return r.String()
	case gjson.JSON:
		if r.IsArray() {
			values := []any{}
			r.ForEach(func(_, v gjson.Result) bool {
				values = append(values, toValue(v))
				return true
			})
			return values
		}
		obj := domain.Object{}
		r.ForEach(func(k, v gjson.Result) bool {
			obj = obj.Set(k.String(), toValue(v))
			return true
		})
		return obj
	default:
		return nil
	}
}

// parseError reports why body is not JSON in the standard decoder's words.
func parseError(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}
	return domain.ErrMalformedJSON
}

func isMarkup(contentType string, body []byte) bool {
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			if _, ok := markupMediaTypes[strings.ToLower(mediaType)]; ok {
				return true
			}
		}
	}

	trimmed := bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))
	trimmed = bytes.TrimLeftFunc(trimmed, unicode.IsSpace)
	return len(trimmed) > 0 && trimmed[0] == '<'
}
