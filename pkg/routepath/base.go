package routepath

import "strings"

// NormalizeBase turns a deploy-time base path (for example the BASE_URL of the
// build environment) into the form used for joining: a leading slash, no
// trailing slash, and "/" for the root. Full URLs keep only their path.
func NormalizeBase(base string) string {
	base = strings.TrimSpace(base)
	if i := strings.Index(base, "://"); i != -1 {
		rest := base[i+3:]
		if j := strings.IndexByte(rest, '/'); j != -1 {
			base = rest[j:]
		} else {
			base = ""
		}
	}
	base, _, _ = Split(base)
	for strings.Contains(base, "//") {
		base = strings.ReplaceAll(base, "//", "/")
	}
	base = strings.TrimRight(base, "/")
	if base == "" {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

// JoinBase prefixes an application path with the normalized base.
func JoinBase(base, path string) string {
	if base == "" || base == "/" {
		return path
	}
	return base + path
}

// StripBase removes the normalized base from a request path.
// It reports false when the path is not under base.
func StripBase(base, path string) (string, bool) {
	if base == "" || base == "/" {
		return path, true
	}
	if !strings.HasPrefix(path, base) {
		return "", false
	}
	rest := path[len(base):]
	switch {
	case rest == "":
		return "/", true
	case rest[0] == '/':
		return rest, true
	case rest[0] == '?' || rest[0] == '#':
		return "/" + rest, true
	default:
		// "/appx" is not under "/app".
		return "", false
	}
}
