package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/archadium/internal/game/content"
)

type widget struct {
	ID    string `yaml:"id" validate:"required"`
	Name  string `yaml:"name" validate:"required"`
	Power int    `yaml:"power" validate:"gte=0"`
	Kind  string `yaml:"kind" validate:"oneof=small large"`
}

func newWidget() widget { return widget{Power: 3, Kind: "small"} }

func TestDecode_SingleRecord(t *testing.T) {
	recs, err := content.Decode([]byte("id: a\nname: Alpha\n"), "widgets", newWidget)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a", recs[0].ID)
	assert.Equal(t, 3, recs[0].Power, "defaults survive when the field is absent")
	assert.Equal(t, "small", recs[0].Kind)
}

func TestDecode_List(t *testing.T) {
	recs, err := content.Decode([]byte(`
- id: a
  name: Alpha
- id: b
  name: Beta
  power: 9
`), "widgets", newWidget)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[1].ID)
	assert.Equal(t, 9, recs[1].Power)
	assert.Equal(t, 3, recs[0].Power)
}

func TestDecode_KeyedList(t *testing.T) {
	recs, err := content.Decode([]byte(`
widgets:
  - id: a
    name: Alpha
    kind: large
`), "widgets", newWidget)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "large", recs[0].Kind)
}

func TestDecode_KeyedListMustBeList(t *testing.T) {
	_, err := content.Decode([]byte("widgets: nope\n"), "widgets", newWidget)
	assert.Error(t, err)
}

func TestDecode_EmptyDocument(t *testing.T) {
	recs, err := content.Decode([]byte(""), "widgets", newWidget)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDecode_ScalarDocumentRejected(t *testing.T) {
	_, err := content.Decode([]byte("just a string"), "widgets", newWidget)
	assert.Error(t, err)
}

func TestDecode_ValidationErrorsUseYAMLNames(t *testing.T) {
	_, err := content.Decode([]byte("name: Nameless\nkind: medium\n"), "widgets", newWidget)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
	assert.Contains(t, err.Error(), "kind must be one of")
}

func TestLoadDir_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("id: second\nname: B\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("id: first\nname: A\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755))

	recs, err := content.LoadDir(dir, "widgets", newWidget)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "first", recs[0].ID)
	assert.Equal(t, "second", recs[1].ID)
}

func TestLoadDir_MissingDirectoryIsEmpty(t *testing.T) {
	recs, err := content.LoadDir(filepath.Join(t.TempDir(), "absent"), "widgets", newWidget)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLoadDir_ErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("id: [\n"), 0644))
	_, err := content.LoadDir(dir, "widgets", newWidget)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestPropertyDecode_ListPreservesOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		doc := ""
		for i := 0; i < n; i++ {
			doc += "- id: w" + string(rune('a'+i)) + "\n  name: W\n"
		}
		recs, err := content.Decode([]byte(doc), "widgets", newWidget)
		require.NoError(rt, err)
		require.Len(rt, recs, n)
		for i, r := range recs {
			assert.Equal(rt, "w"+string(rune('a'+i)), r.ID)
		}
	})
}
