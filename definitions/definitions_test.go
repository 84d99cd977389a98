package definitions

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_UnmarshalXML(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<files>
  <comment>skipped</comment>
  <file>
    <path> a.txt </path>
    <hash_type>md5</hash_type>
    <hash></hash>
    <path>second path is ignored</path>
  </file>
  <file><hash_type>crc32</hash_type></file>
</files>`

	var f Files
	require.NoError(t, xml.Unmarshal([]byte(doc), &f))

	assert.Equal(t, RootTag, f.XMLName.Local)
	require.Len(t, f.Entries, 2)

	v, ok := f.Entries[0].Field(PathTag)
	assert.True(t, ok)
	assert.Equal(t, "a.txt", v)

	v, ok = f.Entries[0].Field(HashTag)
	assert.True(t, ok, "empty element is present")
	assert.Empty(t, v)

	_, ok = f.Entries[1].Field(PathTag)
	assert.False(t, ok)
	v, _ = f.Entries[1].Field(HashTypeTag)
	assert.Equal(t, "crc32", v)
}

func TestFiles_UnmarshalXMLKeepsRootName(t *testing.T) {
	var f Files
	require.NoError(t, xml.Unmarshal([]byte(`<items><file/></items>`), &f))
	assert.Equal(t, "items", f.XMLName.Local)
	assert.Len(t, f.Entries, 1)
}

func TestFiles_UnmarshalXMLSyntaxError(t *testing.T) {
	var f Files
	assert.Error(t, xml.Unmarshal([]byte(`<files><file><path>a</file></files>`), &f))
}
