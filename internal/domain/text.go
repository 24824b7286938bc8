package domain

import (
	"slices"
	"time"
)

// Status is the review state of a text record.
// Pending records are created by non-admin roles and stay invisible to plain
// users until approved.
type Status string

// Text record statuses.
const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusActive
}

// TranslationLanguages is the fixed set of language codes a translation may
// target. Absent entries mean "not yet translated".
var TranslationLanguages = []string{"de", "es", "fr", "it", "pt"}

// IsTranslationLanguage reports whether code is a supported target language.
func IsTranslationLanguage(code string) bool {
	return slices.Contains(TranslationLanguages, code)
}

// Text is a source snippet with optional translations, categorized by values
// from the shared tag and playlist vocabularies.
// Tags and Playlists keep the order the author gave them; the vocabulary
// singleton is the sorted, deduplicated index over all of them.
type Text struct {
	ID           string            `json:"id"`
	Primary      string            `json:"primary"`
	Translations map[string]string `json:"translations"`
	Tags         []string          `json:"tags"`
	Playlists    []string          `json:"playlists"`
	Status       Status            `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// ListValues returns the tag or playlist values of this text.
func (t *Text) ListValues(lt ListType) []string {
	if lt == ListPlaylists {
		return t.Playlists
	}
	return t.Tags
}

func (t *Text) setListValues(lt ListType, values []string) {
	if lt == ListPlaylists {
		t.Playlists = values
		return
	}
	t.Tags = values
}

// ReplaceListValue rewrites every occurrence of oldValue to newValue in the
// given list, preserving the position of the first occurrence and dropping
// any duplicates the replacement would introduce.
// Returns false if oldValue was not present.
func (t *Text) ReplaceListValue(lt ListType, oldValue, newValue string) bool {
	values := t.ListValues(lt)
	if !slices.Contains(values, oldValue) {
		return false
	}
	replaced := make([]string, 0, len(values))
	for _, v := range values {
		if v == oldValue {
			v = newValue
		}
		if !slices.Contains(replaced, v) {
			replaced = append(replaced, v)
		}
	}
	t.setListValues(lt, replaced)
	return true
}

// RemoveListValue strips every occurrence of value from the given list.
// The list shrinks; no placeholder is left behind.
// Returns false if value was not present.
func (t *Text) RemoveListValue(lt ListType, value string) bool {
	values := t.ListValues(lt)
	if !slices.Contains(values, value) {
		return false
	}
	kept := make([]string, 0, len(values)-1)
	for _, v := range values {
		if v != value {
			kept = append(kept, v)
		}
	}
	t.setListValues(lt, kept)
	return true
}
