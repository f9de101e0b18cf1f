package shaders

import "strings"

// DesktopVersion is the GLSL version desktop GL 2.1 contexts compile.
const DesktopVersion = "#version 120"

// ToDesktop rewrites a GLSL ES 1.00 source for a desktop GL 2.1 driver:
// the version directive is prepended and precision statements, which
// GLSL 1.20 rejects, are dropped.
func ToDesktop(source string) string {
	var b strings.Builder
	b.Grow(len(source) + len(DesktopVersion) + 1)
	b.WriteString(DesktopVersion)
	b.WriteByte('\n')
	for _, line := range strings.SplitAfter(source, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "precision ") {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}
