package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVocabularyList_Add(t *testing.T) {
	v := NewVocabularyList()

	assert.True(t, v.Add(ListTags, "Greeting"))
	assert.True(t, v.Add(ListTags, "Animals"))
	assert.Equal(t, []string{"Animals", "Greeting"}, v.Tags)

	// Second add of the same value is a no-op, not an error.
	assert.False(t, v.Add(ListTags, "Greeting"))
	assert.Len(t, v.Tags, 2)

	// Case-sensitive: different case is a distinct value.
	assert.True(t, v.Add(ListTags, "greeting"))
	assert.Equal(t, []string{"Animals", "Greeting", "greeting"}, v.Tags)
}

func TestVocabularyList_AddKeepsListsIndependent(t *testing.T) {
	v := NewVocabularyList()

	v.Add(ListTags, "Gym")
	assert.True(t, v.Add(ListPlaylists, "Gym"))
	assert.Equal(t, []string{"Gym"}, v.Tags)
	assert.Equal(t, []string{"Gym"}, v.Playlists)
}

func TestVocabularyList_Rename(t *testing.T) {
	v := NewVocabularyList()
	v.Add(ListPlaylists, "Gym")
	v.Add(ListPlaylists, "Morning")

	assert.True(t, v.Rename(ListPlaylists, "Gym", "Gym Mix"))
	assert.Equal(t, []string{"Gym Mix", "Morning"}, v.Playlists)

	// Renaming an absent value fails.
	assert.False(t, v.Rename(ListPlaylists, "Gym", "Whatever"))
}

func TestVocabularyList_RenameMergesExisting(t *testing.T) {
	v := NewVocabularyList()
	v.Add(ListTags, "Greeting")
	v.Add(ListTags, "Greetings")

	// Renaming onto an existing term collapses the two into one entry.
	assert.True(t, v.Rename(ListTags, "Greetings", "Greeting"))
	assert.Equal(t, []string{"Greeting"}, v.Tags)
}

func TestVocabularyList_Remove(t *testing.T) {
	v := NewVocabularyList()
	v.Add(ListTags, "A")
	v.Add(ListTags, "B")

	assert.True(t, v.Remove(ListTags, "A"))
	assert.Equal(t, []string{"B"}, v.Tags)
	assert.False(t, v.Remove(ListTags, "A"))
}

func TestVocabularyList_Missing(t *testing.T) {
	v := NewVocabularyList()
	v.Add(ListTags, "Known")

	missing := v.Missing(ListTags, []string{"Known", "New", "", "New", "Other"})
	assert.Equal(t, []string{"New", "Other"}, missing)

	assert.Empty(t, v.Missing(ListTags, []string{"Known"}))
	assert.Empty(t, v.Missing(ListTags, nil))
}

func TestListType_Valid(t *testing.T) {
	assert.True(t, ListTags.Valid())
	assert.True(t, ListPlaylists.Valid())
	assert.False(t, ListType("genres").Valid())
	assert.False(t, ListType("").Valid())
}
