package domain_test

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/catalog/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", domain.Snippet([]byte("short")))

	long := strings.Repeat("é", domain.SnippetLimit+50)
	got := domain.Snippet([]byte(long))
	assert.Equal(t, domain.SnippetLimit, utf8.RuneCountInString(got))
}

func TestManifestErrors_MatchSentinels(t *testing.T) {
	fetchErr := error(&domain.FetchError{Path: "/a.json", StatusCode: 500, Snippet: "boom"})
	contentErr := error(&domain.UnexpectedContentError{Path: "/b.json", StatusCode: 404, Snippet: "<html>"})
	jsonErr := error(&domain.MalformedJSONError{Path: "/c.json", Cause: errors.New("unexpected end")})

	assert.ErrorIs(t, fetchErr, domain.ErrManifestFetch)
	assert.ErrorIs(t, contentErr, domain.ErrUnexpectedContent)
	assert.ErrorIs(t, jsonErr, domain.ErrMalformedJSON)

	assert.NotErrorIs(t, fetchErr, domain.ErrUnexpectedContent)
	assert.NotErrorIs(t, contentErr, domain.ErrManifestFetch)

	// Metadata wrapping keeps the classification reachable.
	wrapped := zerr.With(contentErr, "path", "/b.json")
	assert.ErrorIs(t, wrapped, domain.ErrUnexpectedContent)

	var target *domain.UnexpectedContentError
	assert.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "/b.json", target.Path)
}

func TestManifestErrors_Messages(t *testing.T) {
	assert.Equal(t,
		"request for /a.json failed with status 500. Response snippet: boom",
		(&domain.FetchError{Path: "/a.json", StatusCode: 500, Snippet: "boom"}).Error())

	assert.Equal(t,
		"expected JSON from /b.json but received markup (status 200, content type text/html). Response snippet: <html>",
		(&domain.UnexpectedContentError{
			Path: "/b.json", StatusCode: 200, ContentType: "text/html", Snippet: "<html>",
		}).Error())

	assert.Equal(t,
		"invalid JSON from /c.json: unexpected end. Response snippet: {",
		(&domain.MalformedJSONError{Path: "/c.json", Cause: errors.New("unexpected end"), Snippet: "{"}).Error())
}
