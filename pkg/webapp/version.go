package webapp

import (
	"strconv"
	"strings"
)

// VersionAtLeast compares dot separated Bot API versions the way the host
// does: numerically per component, missing components count as zero.
// Non-numeric components count as zero too.
func VersionAtLeast(have, want string) bool {
	haveParts := strings.Split(strings.TrimSpace(have), ".")
	wantParts := strings.Split(strings.TrimSpace(want), ".")
	for i := 0; i < max(len(haveParts), len(wantParts)); i++ {
		h, w := versionPart(haveParts, i), versionPart(wantParts, i)
		if h != w {
			return h > w
		}
	}
	return true
}

func versionPart(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}
	return n
}
