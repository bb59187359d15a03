package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/catalog/internal/core/domain"
)

func TestNormalize_Shapes(t *testing.T) {
	tests := []struct {
		name          string
		raw           any
		defaultFolder string
		wantFiles     []string
	}{
		{
			name:      "bare array",
			raw:       []any{domain.Object{{Key: "file", Value: "a.png"}}, "b.png"},
			wantFiles: []string{"a.png", "b.png"},
		},
		{
			name: "items member",
			raw: domain.Object{
				{Key: "items", Value: []any{domain.Object{{Key: "file", Value: "a.png"}}}},
			},
			wantFiles: []string{"a.png"},
		},
		{
			name: "manifest member",
			raw: domain.Object{
				{Key: "manifest", Value: []any{"m.png"}},
			},
			wantFiles: []string{"m.png"},
		},
		{
			name: "items wins over manifest",
			raw: domain.Object{
				{Key: "manifest", Value: []any{"m.png"}},
				{Key: "items", Value: []any{"i.png"}},
			},
			wantFiles: []string{"i.png"},
		},
		{
			name: "items that is not an array falls through to categories",
			raw: domain.Object{
				{Key: "items", Value: "nope"},
				{Key: "charts", Value: []any{"c.png"}},
			},
			wantFiles: []string{"c.png"},
		},
		{
			name:      "scalar document",
			raw:       "manifest.json",
			wantFiles: []string{},
		},
		{
			name:      "null document",
			raw:       nil,
			wantFiles: []string{},
		},
		{
			name:      "empty object",
			raw:       domain.Object{},
			wantFiles: []string{},
		},
		{
			name:      "plain map is walked in key order",
			raw:       map[string]any{"b": []any{"y"}, "a": []any{"x"}},
			wantFiles: []string{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := domain.Normalize(tt.raw, tt.defaultFolder)
			require.NotNil(t, items)

			files := make([]string, 0, len(items))
			for _, it := range items {
				files = append(files, it.File)
			}
			assert.Equal(t, tt.wantFiles, files)
		})
	}
}

func TestNormalize_ItemsObject(t *testing.T) {
	raw := domain.Object{
		{Key: "items", Value: []any{domain.Object{{Key: "file", Value: "a.png"}}}},
	}

	items := domain.Normalize(raw, "")

	require.Len(t, items, 1)
	assert.Equal(t, domain.ManifestItem{Folder: "", File: "a.png", Name: "a.png"}, items[0])
}

func TestNormalize_BareFileNameUsesDefaultFolder(t *testing.T) {
	items := domain.Normalize([]any{"b.png"}, "graphs")

	require.Len(t, items, 1)
	assert.Equal(t, domain.ManifestItem{Folder: "graphs", File: "b.png", Name: "B"}, items[0])
}

func TestNormalize_CategoriesInFieldOrder(t *testing.T) {
	raw := domain.Object{
		{Key: "cat1", Value: []any{domain.Object{{Key: "file", Value: "x"}}}},
		{Key: "cat2", Value: []any{domain.Object{{Key: "file", Value: "y"}}}},
		{Key: "note", Value: "not an array"},
	}

	items := domain.Normalize(raw, "")

	require.Len(t, items, 2)
	assert.Equal(t, "x", items[0].File)
	assert.Equal(t, "y", items[1].File)
}

func TestNormalize_KeepsDuplicatesAndOrder(t *testing.T) {
	raw := []any{"a.png", "a.png", domain.Object{{Key: "file", Value: "a.png"}}}

	items := domain.Normalize(raw, "")

	require.Len(t, items, 3)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "A", items[1].Name)
	assert.Equal(t, "a.png", items[2].Name)
}

func TestNormalizeEntry(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   domain.ManifestItem
		wantOK bool
	}{
		{
			name:   "file name with folder prefix ignores default",
			raw:    "reports/q1/summary.final.txt",
			want:   domain.ManifestItem{Folder: "reports/q1", File: "summary.final.txt", Name: "SUMMARY.FINAL"},
			wantOK: true,
		},
		{
			name:   "file name without extension",
			raw:    "README",
			want:   domain.ManifestItem{Folder: "docs", File: "README", Name: "README"},
			wantOK: true,
		},
		{
			name:   "trailing dot is not an extension",
			raw:    "notes.",
			want:   domain.ManifestItem{Folder: "docs", File: "notes.", Name: "NOTES."},
			wantOK: true,
		},
		{
			name:   "empty string",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "folder without file",
			raw:    "graphs/",
			wantOK: false,
		},
		{
			name:   "null",
			raw:    nil,
			wantOK: false,
		},
		{
			name:   "number",
			raw:    json.Number("4"),
			wantOK: false,
		},
		{
			name:   "object without file",
			raw:    domain.Object{{Key: "name", Value: "orphan"}},
			wantOK: false,
		},
		{
			name:   "object with empty file",
			raw:    domain.Object{{Key: "file", Value: ""}},
			wantOK: false,
		},
		{
			name:   "object with false file",
			raw:    domain.Object{{Key: "file", Value: false}},
			wantOK: false,
		},
		{
			name:   "object with zero file",
			raw:    domain.Object{{Key: "file", Value: json.Number("0")}},
			wantOK: false,
		},
		{
			name:   "object with zero float file",
			raw:    domain.Object{{Key: "file", Value: json.Number("0.0")}},
			wantOK: false,
		},
		{
			name:   "object with null file",
			raw:    domain.Object{{Key: "file", Value: nil}},
			wantOK: false,
		},
		{
			name:   "object with numeric file",
			raw:    domain.Object{{Key: "file", Value: json.Number("7")}},
			want:   domain.ManifestItem{Folder: "docs", File: "7", Name: "7"},
			wantOK: true,
		},
		{
			name: "object keeps explicit folder and name",
			raw: domain.Object{
				{Key: "folder", Value: "notGraphs"},
				{Key: "file", Value: "ec2.txt"},
				{Key: "name", Value: "EC2 usage"},
			},
			want:   domain.ManifestItem{Folder: "notGraphs", File: "ec2.txt", Name: "EC2 usage"},
			wantOK: true,
		},
		{
			name: "null folder takes the default",
			raw: domain.Object{
				{Key: "folder", Value: nil},
				{Key: "file", Value: "x.png"},
			},
			want:   domain.ManifestItem{Folder: "docs", File: "x.png", Name: "x.png"},
			wantOK: true,
		},
		{
			name: "known and unknown fields are carried",
			raw: domain.Object{
				{Key: "file", Value: "cpu.png"},
				{Key: "provider", Value: "aws"},
				{Key: "type", Value: "image"},
				{Key: "roles", Value: []any{"admin", "ops"}},
				{Key: "access", Value: "public"},
				{Key: "size", Value: json.Number("42")},
				{Key: "meta", Value: domain.Object{{Key: "region", Value: "eu"}}},
			},
			want: domain.ManifestItem{
				Folder:   "docs",
				File:     "cpu.png",
				Name:     "cpu.png",
				Provider: "aws",
				Type:     "image",
				Roles:    []string{"admin", "ops"},
				Access:   "public",
				Extra: map[string]any{
					"size": json.Number("42"),
					"meta": domain.Object{{Key: "region", Value: "eu"}},
				},
			},
			wantOK: true,
		},
		{
			name: "single role string",
			raw: domain.Object{
				{Key: "file", Value: "a"},
				{Key: "roles", Value: "admin"},
			},
			want:   domain.ManifestItem{Folder: "docs", File: "a", Name: "a", Roles: []string{"admin"}},
			wantOK: true,
		},
		{
			name: "well-known key with unexpected shape stays in extra",
			raw: domain.Object{
				{Key: "file", Value: "a"},
				{Key: "provider", Value: domain.Object{{Key: "id", Value: "aws"}}},
			},
			want: domain.ManifestItem{
				Folder: "docs",
				File:   "a",
				Name:   "a",
				Extra:  map[string]any{"provider": domain.Object{{Key: "id", Value: "aws"}}},
			},
			wantOK: true,
		},
		{
			name:   "plain map entry",
			raw:    map[string]any{"file": "m.png", "folder": "graphs"},
			want:   domain.ManifestItem{Folder: "graphs", File: "m.png", Name: "m.png"},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.NormalizeEntry(tt.raw, "docs")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
