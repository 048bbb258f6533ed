package rid

import "strings"

// RID is the tokenized form of a runtime identifier.
type RID struct {
	// Platform is the platform name without any version qualifier.
	Platform string
	// Version is the optional version qualifier attached to the platform
	// token, e.g. "10" for "win10" or ".10.12" for "osx.10.12".
	Version string
	// Qualifiers are the tokens between the platform and the architecture.
	Qualifiers []string
	// Architecture is the trailing token.
	Architecture string
}

// String renders the RID in its canonical hyphenated form.
func (r RID) String() string {
	parts := make([]string, 0, len(r.Qualifiers)+2)
	parts = append(parts, r.Platform+r.Version)
	parts = append(parts, r.Qualifiers...)
	parts = append(parts, r.Architecture)
	return strings.Join(parts, "-")
}

// Parse tokenizes tag. It returns false for tags without a separator, with
// empty tokens, or whose platform token carries no platform name.
func Parse(tag string) (RID, bool) {
	tokens := strings.Split(strings.ToLower(strings.TrimSpace(tag)), "-")
	if len(tokens) < 2 {
		return RID{}, false
	}
	for _, tok := range tokens {
		if tok == "" {
			return RID{}, false
		}
	}

	head := tokens[0]
	cut := strings.IndexFunc(head, isVersionRune)
	if cut == 0 {
		return RID{}, false
	}
	r := RID{Platform: head, Architecture: tokens[len(tokens)-1]}
	if cut > 0 {
		r.Platform, r.Version = head[:cut], head[cut:]
		if !isVersion(r.Version) {
			return RID{}, false
		}
	}
	if len(tokens) > 2 {
		r.Qualifiers = tokens[1 : len(tokens)-1]
	}
	return r, true
}

func isVersionRune(c rune) bool {
	return c == '.' || (c >= '0' && c <= '9')
}

func isVersion(s string) bool {
	for _, c := range s {
		if !isVersionRune(c) {
			return false
		}
	}
	return true
}
