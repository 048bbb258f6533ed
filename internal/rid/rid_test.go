package rid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		tag      string
		ok       bool
		expected RID
	}{
		{
			name:     "portable",
			tag:      "win-x64",
			ok:       true,
			expected: RID{Platform: "win", Architecture: "x64"},
		},
		{
			name:     "numeric version",
			tag:      "win10-x64",
			ok:       true,
			expected: RID{Platform: "win", Version: "10", Architecture: "x64"},
		},
		{
			name:     "dotted version",
			tag:      "osx.10.12-x64",
			ok:       true,
			expected: RID{Platform: "osx", Version: ".10.12", Architecture: "x64"},
		},
		{
			name:     "qualifier between platform and architecture",
			tag:      "linux-musl-arm64",
			ok:       true,
			expected: RID{Platform: "linux", Qualifiers: []string{"musl"}, Architecture: "arm64"},
		},
		{
			name:     "mixed case is normalized",
			tag:      "Win7-X86",
			ok:       true,
			expected: RID{Platform: "win", Version: "7", Architecture: "x86"},
		},
		{name: "error - no separator", tag: "win"},
		{name: "error - empty token", tag: "win--x64"},
		{name: "error - trailing separator", tag: "win-"},
		{name: "error - version only", tag: "10-x64"},
		{name: "error - letters after version", tag: "win10rt-x64"},
		{name: "error - empty", tag: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := Parse(tc.tag)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, r)
			}
		})
	}
}

func TestRID_String(t *testing.T) {
	r, ok := Parse("linux-musl-x64")
	require.True(t, ok)
	assert.Equal(t, "linux-musl-x64", r.String())

	r, ok = Parse("osx.10.12-arm64")
	require.True(t, ok)
	assert.Equal(t, "osx.10.12-arm64", r.String())
}

func TestMatcher_Compatible(t *testing.T) {
	m := NewMatcher("win", "x64")

	testCases := map[string]bool{
		"":          true,
		"   ":       true,
		"win-x64":   true,
		"win7-x64":  true,
		"win10-x64": true,
		"WIN10-X64": true,
		"win-x86":   false,
		"osx-x64":   false,
		"winrt-x64": false,
		"win":       false,
		"x64":       false,
		"-x64":      false,
		"win-":      false,
		"linux-x64": false,
	}
	for tag, want := range testCases {
		assert.Equal(t, want, m.Compatible(tag), "tag %q", tag)
	}
}

func TestMatcher_QualifiedLinuxTags(t *testing.T) {
	m := NewMatcher("linux", "arm64")

	assert.True(t, m.Compatible("linux-arm64"))
	assert.True(t, m.Compatible("linux-musl-arm64"))
	assert.False(t, m.Compatible("linux-musl-x64"))
	assert.False(t, m.Compatible("linux-arm"))
}
