package textutil

import "strings"

// SnakeCase converts an arbitrary file base name into a lowercase token made
// of alphanumeric segments joined by single underscores. Characters outside
// [A-Za-z0-9] become underscores, camelCase boundaries are split
// ("SpriteSheet" -> "sprite_sheet"), runs of underscores collapse, and
// leading/trailing underscores are trimmed. Empty input yields empty output.
func SnakeCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	var prev rune
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if prev >= 'a' && prev <= 'z' || prev >= '0' && prev <= '9' {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
		prev = r
	}

	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}
