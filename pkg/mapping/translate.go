package mapping

// Translate rewrites an extracted raw value through a from/to lookup table.
// The key match is exact and case-sensitive; with no matching rule (or an
// empty table) the original value passes through unchanged.
func Translate(raw string, table map[string]string) string {
	if renamed, ok := table[raw]; ok {
		return renamed
	}
	return raw
}
