package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/catalog/internal/core/domain"
)

func TestManifestItem_Href(t *testing.T) {
	assert.Equal(t, "/graphs/cpu.png", domain.ManifestItem{Folder: "graphs", File: "cpu.png"}.Href())
	assert.Equal(t, "/reports/q1/a.txt", domain.ManifestItem{Folder: "/reports/q1/", File: "a.txt"}.Href())
	assert.Equal(t, "/a.txt", domain.ManifestItem{File: "a.txt"}.Href())
}

func TestManifestItem_Kind(t *testing.T) {
	assert.Equal(t, "video", domain.ManifestItem{Folder: "graphs", Type: "video"}.Kind())
	assert.Equal(t, domain.KindImage, domain.ManifestItem{Folder: "graphs"}.Kind())
	assert.Empty(t, domain.ManifestItem{Folder: "notGraphs"}.Kind())
}

func TestManifestItem_MarshalJSON(t *testing.T) {
	item := domain.ManifestItem{
		Folder:   "graphs",
		File:     "cpu.png",
		Name:     "CPU",
		Provider: "aws",
		Roles:    []string{"admin"},
		Extra: map[string]any{
			"meta": domain.Object{{Key: "z", Value: "1"}, {Key: "a", Value: "2"}},
		},
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"folder":"graphs","file":"cpu.png","name":"CPU","provider":"aws","roles":["admin"],"meta":{"z":"1","a":"2"}}`,
		string(data))
	assert.Contains(t, string(data), `"meta":{"z":"1","a":"2"}`)
}

func TestManifestItem_UnmarshalJSON(t *testing.T) {
	var item domain.ManifestItem
	err := json.Unmarshal([]byte(`{"file":"a.txt","type":"text","roles":["ops"],"pages":3}`), &item)
	require.NoError(t, err)

	assert.Equal(t, "a.txt", item.File)
	assert.Equal(t, "text", item.Type)
	assert.Equal(t, []string{"ops"}, item.Roles)
	assert.Equal(t, map[string]any{"pages": float64(3)}, item.Extra)
	assert.Empty(t, item.Name)
}

func TestFilterByFolder(t *testing.T) {
	items := []domain.ManifestItem{
		{Folder: "graphs", File: "a"},
		{Folder: "notGraphs", File: "b"},
		{Folder: "graphs", File: "c"},
	}

	got := domain.FilterByFolder(items, "graphs")

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].File)
	assert.Equal(t, "c", got[1].File)
	assert.Len(t, items, 3, "input must not be modified")
	assert.Equal(t, "b", items[1].File)
}

func TestFilterByProvider(t *testing.T) {
	items := []domain.ManifestItem{
		{File: "a", Provider: "AWS"},
		{File: "b", Provider: "gcp"},
		{File: "c"},
	}

	got := domain.FilterByProvider(items, "aws")

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].File)
}

func TestSortItems(t *testing.T) {
	items := []domain.ManifestItem{
		{Folder: "notGraphs", Name: "B"},
		{Folder: "graphs", Name: "Z"},
		{Folder: "graphs", Name: "A"},
	}

	got := domain.SortItems(items)

	assert.Equal(t, []string{"A", "Z", "B"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, "B", items[0].Name, "input must not be modified")
}
