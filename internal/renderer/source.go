package renderer

import "strings"

const desktopVersion = "#version 330 core"

// desktopSource rewrites a GLSL ES 3.00 version directive into the desktop
// GLSL 3.30 one, so shaders written for WebGL2 compile on a 3.3 core
// context. The directive must be the first non-blank line; anything else,
// including sources without a directive, is returned unchanged so the
// driver reports on exactly what the user wrote.
func desktopSource(source string) string {
	offset := 0
	rest := source
	for {
		line, tail, found := strings.Cut(rest, "\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" && found {
			offset += len(line) + 1
			rest = tail
			continue
		}
		if !isESVersion(trimmed) {
			return source
		}
		start := offset + strings.Index(line, "#")
		end := offset + len(strings.TrimRight(line, " \t\r"))
		return source[:start] + desktopVersion + source[end:]
	}
}

func isESVersion(line string) bool {
	fields := strings.Fields(strings.TrimPrefix(line, "#"))
	return strings.HasPrefix(line, "#") &&
		len(fields) == 3 &&
		fields[0] == "version" &&
		fields[1] == "300" &&
		fields[2] == "es"
}
