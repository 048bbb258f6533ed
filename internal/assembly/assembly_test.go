package assembly

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	peparser "github.com/saferwall/pe"
)

// heaps builds a #Strings heap holding name and culture and a #Blob heap
// holding key, returning the heap indexes of each.
func heaps(name, culture string, key []byte) (strs, blobs []byte, nameIdx, cultureIdx, keyIdx uint32) {
	strs = []byte{0}
	nameIdx = uint32(len(strs))
	strs = append(append(strs, name...), 0)
	if culture != "" {
		cultureIdx = uint32(len(strs))
		strs = append(append(strs, culture...), 0)
	}
	blobs = []byte{0}
	if len(key) > 0 {
		keyIdx = uint32(len(blobs))
		blobs = append(append(blobs, byte(len(key))), key...)
	}
	return strs, blobs, nameIdx, cultureIdx, keyIdx
}

func clrWith(name, culture string, key []byte, flags uint32, version [4]uint16) *peparser.CLRData {
	strs, blobs, nameIdx, cultureIdx, keyIdx := heaps(name, culture, key)
	return &peparser.CLRData{
		MetadataStreams: map[string][]byte{"#Strings": strs, "#Blob": blobs},
		MetadataTables: map[int]*peparser.MetadataTable{
			assemblyTable: {Content: []peparser.AssemblyTableRow{{
				MajorVersion:   version[0],
				MinorVersion:   version[1],
				BuildNumber:    version[2],
				RevisionNumber: version[3],
				Flags:          flags,
				PublicKey:      keyIdx,
				Name:           nameIdx,
				Culture:        cultureIdx,
			}}},
		},
	}
}

func TestIdentityFromCLR(t *testing.T) {
	token := []byte{0x30, 0xad, 0x4f, 0xe6, 0xb2, 0xa6, 0xae, 0xed}

	testCases := []struct {
		name     string
		clr      *peparser.CLRData
		expected Identity
	}{
		{
			name:     "neutral culture with token blob",
			clr:      clrWith("Newtonsoft.Json", "", token, 0, [4]uint16{13, 0, 0, 0}),
			expected: Identity{Name: "Newtonsoft.Json", Version: "13.0.0.0", Culture: NeutralCulture, PublicKeyToken: "30ad4fe6b2a6aeed"},
		},
		{
			name:     "satellite assembly with culture",
			clr:      clrWith("Sample.Resources", "en-US", nil, 0, [4]uint16{1, 2, 3, 4}),
			expected: Identity{Name: "Sample.Resources", Version: "1.2.3.4", Culture: "en-US"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := identityFromCLR(tc.clr)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestIdentityFromCLR_FullPublicKeyIsHashed(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)

	id, err := identityFromCLR(clrWith("Signed", "", key, assemblyFlagPublicKey, [4]uint16{1, 0, 0, 0}))
	require.NoError(t, err)
	assert.Len(t, id.PublicKeyToken, 16)
	assert.Equal(t, publicKeyToken(key, true), id.PublicKeyToken)
}

func TestIdentityFromCLR_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		clr    *peparser.CLRData
		reason string
	}{
		{name: "no metadata", clr: &peparser.CLRData{}, reason: "no CLI metadata"},
		{
			name: "module without manifest",
			clr: &peparser.CLRData{MetadataTables: map[int]*peparser.MetadataTable{
				0x00: {Content: nil},
			}},
			reason: "no Assembly table",
		},
		{
			name: "name index outside the heap",
			clr: &peparser.CLRData{
				MetadataStreams: map[string][]byte{"#Strings": {0}},
				MetadataTables: map[int]*peparser.MetadataTable{
					assemblyTable: {Content: []peparser.AssemblyTableRow{{Name: 42}}},
				},
			},
			reason: "string index out of range",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := identityFromCLR(tc.clr)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Contains(t, fe.Reason, tc.reason)
		})
	}
}

func TestReadBlob(t *testing.T) {
	heap := []byte{0, 3, 'a', 'b', 'c', 0x80, 0x02, 'x', 'y'}

	b, err := readBlob(heap, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), b)

	b, err = readBlob(heap, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("xy"), b)

	_, err = readBlob([]byte{0, 9, 'a'}, 1)
	assert.Error(t, err)
}

func TestPublicKeyToken(t *testing.T) {
	assert.Equal(t, "", publicKeyToken(nil, true))
	assert.Equal(t, "0102030405060708", publicKeyToken([]byte{1, 2, 3, 4, 5, 6, 7, 8}, false))
}

func TestIdentity_String(t *testing.T) {
	id := Identity{Name: "A", Version: "1.0.0.0", Culture: NeutralCulture, PublicKeyToken: "0011223344556677"}
	assert.Equal(t, "A, Version=1.0.0.0, Culture=neutral, PublicKeyToken=0011223344556677", id.String())
	assert.Equal(t, "B", Identity{Name: "B"}.String())
}

func TestReader_FallsBackForNonPEFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Fake.Assembly.dll")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a PE image"), 0o600))

	id, err := (&Reader{}).ReadIdentity(path)
	require.NoError(t, err)
	assert.Equal(t, Identity{Name: "Fake.Assembly"}, id)

	_, err = (&Reader{Strict: true}).ReadIdentity(path)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, path, fe.Path)
}
