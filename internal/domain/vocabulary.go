package domain

import (
	"slices"
	"sort"
)

// VocabularyID is the fixed sentinel identifier for the vocabulary singleton.
// Both lists live in a single persisted document, not one document per type.
const VocabularyID = "main"

// ListType selects one of the two controlled vocabularies.
type ListType string

// The two controlled vocabularies.
const (
	ListTags      ListType = "tags"
	ListPlaylists ListType = "playlists"
)

// Valid reports whether the list type is one of the known vocabularies.
func (lt ListType) Valid() bool {
	return lt == ListTags || lt == ListPlaylists
}

// Singular returns the list type's singular noun, for messages.
func (lt ListType) Singular() string {
	if lt == ListPlaylists {
		return "playlist"
	}
	return "tag"
}

// VocabularyList is the canonical, deduplicated set of tag and playlist values.
// Every value referenced by any text record must appear here; the registry
// enforces that on write, the store does not.
// Both lists are kept sorted ascending for display. Insertion order is not
// preserved, unlike the per-text tag/playlist fields which keep user order.
type VocabularyList struct {
	ID        string   `json:"id"`
	Tags      []string `json:"tags"`
	Playlists []string `json:"playlists"`
}

// NewVocabularyList returns an empty vocabulary singleton.
func NewVocabularyList() *VocabularyList {
	return &VocabularyList{
		ID:        VocabularyID,
		Tags:      []string{},
		Playlists: []string{},
	}
}

// Values returns the list for the given type.
func (v *VocabularyList) Values(lt ListType) []string {
	if lt == ListPlaylists {
		return v.Playlists
	}
	return v.Tags
}

func (v *VocabularyList) setValues(lt ListType, values []string) {
	if lt == ListPlaylists {
		v.Playlists = values
		return
	}
	v.Tags = values
}

// Contains reports whether value is present in the given list. Case-sensitive.
func (v *VocabularyList) Contains(lt ListType, value string) bool {
	return slices.Contains(v.Values(lt), value)
}

// Add inserts value into the given list and re-sorts.
// Returns false without changing anything if the value is already present.
func (v *VocabularyList) Add(lt ListType, value string) bool {
	if v.Contains(lt, value) {
		return false
	}
	values := append(v.Values(lt), value)
	sort.Strings(values)
	v.setValues(lt, values)
	return true
}

// Rename replaces oldValue with newValue in the given list and re-sorts.
// Returns false if oldValue is absent. If newValue already exists as a
// distinct entry, the two terms merge into one (the list shrinks by one).
func (v *VocabularyList) Rename(lt ListType, oldValue, newValue string) bool {
	values := v.Values(lt)
	i := slices.Index(values, oldValue)
	if i == -1 {
		return false
	}
	if slices.Contains(values, newValue) && newValue != oldValue {
		// Merge: the old term collapses into the existing new one.
		v.setValues(lt, slices.Delete(slices.Clone(values), i, i+1))
		return true
	}
	values = slices.Clone(values)
	values[i] = newValue
	sort.Strings(values)
	v.setValues(lt, values)
	return true
}

// Remove deletes value from the given list.
// Returns false if the value is absent.
func (v *VocabularyList) Remove(lt ListType, value string) bool {
	values := v.Values(lt)
	i := slices.Index(values, value)
	if i == -1 {
		return false
	}
	v.setValues(lt, slices.Delete(slices.Clone(values), i, i+1))
	return true
}

// Missing returns the subset of candidates not yet present in the given list,
// preserving candidate order. Used to decide which values a text write needs
// to register.
func (v *VocabularyList) Missing(lt ListType, candidates []string) []string {
	var missing []string
	for _, c := range candidates {
		if c != "" && !v.Contains(lt, c) && !slices.Contains(missing, c) {
			missing = append(missing, c)
		}
	}
	return missing
}
