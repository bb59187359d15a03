package domain

import (
	"cmp"
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// Well-known manifest item keys.
const (
	KeyFolder   = "folder"
	KeyFile     = "file"
	KeyName     = "name"
	KeyProvider = "provider"
	KeyType     = "type"
	KeyRoles    = "roles"
	KeyAccess   = "access"
)

// KindImage is the kind assumed for items in the graphs folder that declare no type.
const KindImage = "image"

// graphsFolder holds rendered charts, which are images unless stated otherwise.
const graphsFolder = "graphs"

// ManifestItem is one catalogued resource of a manifest.
//
// Only File is guaranteed to be set on items produced by Normalize. Keys other than the
// well-known ones are preserved unchanged in Extra.
type ManifestItem struct {
	Folder   string
	File     string
	Name     string
	Provider string
	Type     string
	Roles    []string
	Access   string
	Extra    map[string]any
}

// Href returns the site-relative location of the item's resource.
func (i ManifestItem) Href() string {
	if i.Folder == "" {
		return "/" + i.File
	}
	return "/" + strings.Trim(i.Folder, "/") + "/" + i.File
}

// Kind returns the declared type, falling back to an image for charts in the graphs folder.
func (i ManifestItem) Kind() string {
	if i.Type != "" {
		return i.Type
	}
	if i.Folder == graphsFolder {
		return KindImage
	}
	return ""
}

// MarshalJSON flattens Extra next to the well-known fields.
func (i ManifestItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(i.Extra)+7)
	maps.Copy(out, i.Extra)

	out[KeyFolder] = i.Folder
	out[KeyFile] = i.File
	out[KeyName] = i.Name
	if i.Provider != "" {
		out[KeyProvider] = i.Provider
	}
	if i.Type != "" {
		out[KeyType] = i.Type
	}
	if i.Roles != nil {
		out[KeyRoles] = i.Roles
	}
	if i.Access != "" {
		out[KeyAccess] = i.Access
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads an item written by MarshalJSON or any manifest entry object.
// Unlike NormalizeEntry it applies no defaults and accepts items without a file.
func (i *ManifestItem) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = itemFromFields(ObjectFromMap(raw))
	return nil
}

// FilterByFolder returns the items stored in folder.
func FilterByFolder(items []ManifestItem, folder string) []ManifestItem {
	return slices.DeleteFunc(slices.Clone(items), func(it ManifestItem) bool {
		return it.Folder != folder
	})
}

// FilterByProvider returns the items whose provider matches, ignoring case.
func FilterByProvider(items []ManifestItem, provider string) []ManifestItem {
	return slices.DeleteFunc(slices.Clone(items), func(it ManifestItem) bool {
		return !strings.EqualFold(it.Provider, provider)
	})
}

// SortItems returns a copy of items ordered by folder, then name.
func SortItems(items []ManifestItem) []ManifestItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b ManifestItem) int {
		if c := cmp.Compare(a.Folder, b.Folder); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return sorted
}
