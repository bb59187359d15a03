package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize converts a decoded manifest document into its items.
//
// The document shape is detected in this order, first match wins:
//  1. an array of entries;
//  2. an object with an array under "items";
//  3. an object with an array under "manifest";
//  4. any other object: its array-valued members concatenated in field order.
//
// Anything else yields an empty list. Entries that do not describe a file are dropped.
func Normalize(raw any, defaultFolder string) []ManifestItem {
	entries := manifestEntries(raw)
	items := make([]ManifestItem, 0, len(entries))
	for _, entry := range entries {
		if item, ok := NormalizeEntry(entry, defaultFolder); ok {
			items = append(items, item)
		}
	}
	return items
}

func manifestEntries(raw any) []any {
	switch doc := raw.(type) {
	case []any:
		return doc
	case map[string]any:
		return manifestEntries(ObjectFromMap(doc))
	case Object:
		for _, key := range []string{"items", "manifest"} {
			if v, ok := doc.Get(key); ok {
				if entries, ok := v.([]any); ok {
					return entries
				}
			}
		}

		var entries []any
		for _, f := range doc {
			if group, ok := f.Value.([]any); ok {
				entries = append(entries, group...)
			}
		}
		return entries
	default:
		return nil
	}
}

// NormalizeEntry converts one manifest entry into an item.
//
// A string is a file name, optionally prefixed with its folder ("graphs/cpu.png").
// An object must carry a file; folder and name default when absent and every other
// member is kept. The boolean is false for entries that do not describe a file.
func NormalizeEntry(raw any, defaultFolder string) (ManifestItem, bool) {
	switch entry := raw.(type) {
	case string:
		return itemFromFileName(entry, defaultFolder)
	case map[string]any:
		return itemFromObject(ObjectFromMap(entry), defaultFolder)
	case Object:
		return itemFromObject(entry, defaultFolder)
	default:
		return ManifestItem{}, false
	}
}

func itemFromFileName(entry, defaultFolder string) (ManifestItem, bool) {
	folder, file := defaultFolder, entry
	if idx := strings.LastIndex(entry, "/"); idx >= 0 {
		folder, file = entry[:idx], entry[idx+1:]
	}
	if file == "" {
		return ManifestItem{}, false
	}
	return ManifestItem{
		Folder: folder,
		File:   file,
		Name:   strings.ToUpper(trimExtension(file)),
	}, true
}

// trimExtension removes the last ".ext" suffix; a trailing dot alone is not an extension.
func trimExtension(file string) string {
	idx := strings.LastIndex(file, ".")
	if idx < 0 || idx == len(file)-1 {
		return file
	}
	return file[:idx]
}

func itemFromObject(entry Object, defaultFolder string) (ManifestItem, bool) {
	if v, _ := entry.Get(KeyFile); !truthy(v) {
		return ManifestItem{}, false
	}
	item := itemFromFields(entry)
	if item.File == "" {
		return ManifestItem{}, false
	}
	if _, ok := scalarField(entry, KeyFolder); !ok {
		item.Folder = defaultFolder
	}
	if _, ok := scalarField(entry, KeyName); !ok {
		item.Name = item.File
	}
	return item, true
}

// itemFromFields maps the well-known members onto typed fields and keeps the rest in Extra.
// Well-known members holding an unexpected shape are kept in Extra unchanged.
func itemFromFields(entry Object) ManifestItem {
	var item ManifestItem
	for _, f := range entry {
		switch f.Key {
		case KeyFolder, KeyFile, KeyName, KeyProvider, KeyType, KeyAccess:
			s, ok := scalarString(f.Value)
			if !ok {
				if f.Value != nil {
					item.setExtra(f.Key, f.Value)
				}
				continue
			}
			item.setKnown(f.Key, s)
		case KeyRoles:
			roles, ok := roleList(f.Value)
			if !ok {
				if f.Value != nil {
					item.setExtra(f.Key, f.Value)
				}
				continue
			}
			item.Roles = roles
		default:
			item.setExtra(f.Key, f.Value)
		}
	}
	return item
}

func (i *ManifestItem) setKnown(key, value string) {
	switch key {
	case KeyFolder:
		i.Folder = value
	case KeyFile:
		i.File = value
	case KeyName:
		i.Name = value
	case KeyProvider:
		i.Provider = value
	case KeyType:
		i.Type = value
	case KeyAccess:
		i.Access = value
	}
}

func (i *ManifestItem) setExtra(key string, value any) {
	if i.Extra == nil {
		i.Extra = make(map[string]any)
	}
	i.Extra[key] = value
}

// truthy reports whether a file value names something: false, zero, the empty string
// and null do not.
func truthy(v any) bool {
	switch s := v.(type) {
	case nil:
		return false
	case bool:
		return s
	case string:
		return s != ""
	case json.Number:
		f, err := s.Float64()
		return err != nil || f != 0
	case float64:
		return s != 0
	default:
		return true
	}
}

// scalarField reports whether entry holds a non-null scalar under key.
func scalarField(entry Object, key string) (string, bool) {
	v, ok := entry.Get(key)
	if !ok {
		return "", false
	}
	return scalarString(v)
}

// scalarString renders strings, numbers and booleans as text.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}

// roleList accepts a single role or an array of roles; non-scalar array members are skipped.
func roleList(v any) ([]string, bool) {
	if s, ok := scalarString(v); ok {
		return []string{s}, true
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	roles := make([]string, 0, len(list))
	for _, r := range list {
		if s, ok := scalarString(r); ok {
			roles = append(roles, s)
		}
	}
	return roles, true
}
