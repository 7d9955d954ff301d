package routepath

import (
	"errors"
	"strings"
)

// CanonicalizeResult contains the result of path canonicalization.
type CanonicalizeResult struct {
	// Path is the canonicalized path (without query string or fragment).
	Path string

	// Query is the query string (without leading "?").
	Query string

	// Hash is the fragment (without leading "#").
	Hash string

	// Changed indicates if the path was modified during canonicalization.
	Changed bool
}

// Path errors.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
	ErrPathTooLong          = errors.New("path too long")
)

// MaxPathLength bounds every path accepted for navigation.
const MaxPathLength = 2048

// CanonicalizePath normalizes a request path before it is matched.
//
// The following transformations are applied:
//   - Remove trailing slash (except for root "/")
//   - Collapse multiple slashes (/signup//x → /signup/x)
//   - Remove "." segments
//   - Resolve ".." segments
//
// Backslashes, NUL bytes, invalid percent-escapes and ".." segments that would
// climb above root are rejected. Query string and fragment are split off and
// returned untouched. Case is preserved: matching is case-sensitive.
func CanonicalizePath(input string) (CanonicalizeResult, error) {
	if input == "" {
		return CanonicalizeResult{Path: "/", Changed: true}, nil
	}
	if len(input) > MaxPathLength {
		return CanonicalizeResult{}, ErrPathTooLong
	}

	path, query, hash := Split(input)

	if strings.Contains(path, "\\") {
		return CanonicalizeResult{}, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return CanonicalizeResult{}, ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return CanonicalizeResult{}, err
		}
	}

	original := path

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segments) == 0 {
				return CanonicalizeResult{}, ErrPathEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}

	path = "/" + strings.Join(segments, "/")

	return CanonicalizeResult{
		Path:    path,
		Query:   query,
		Hash:    hash,
		Changed: path != original,
	}, nil
}

// String rebuilds the full path with query and fragment.
func (r CanonicalizeResult) String() string {
	return Join(r.Path, r.Query, r.Hash)
}

// ValidateNavPath checks a navigation target and returns it unchanged.
//
// Navigation targets must be relative to the application: they start with a
// single "/" and are never full URLs, so a navigation cannot leave the origin.
// Unlike CanonicalizePath no segment is rewritten; the resolver matches the
// literal path.
func ValidateNavPath(path string) (string, error) {
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") {
		return "", ErrInvalidPath
	}
	if !strings.HasPrefix(path, "/") {
		return "", ErrInvalidPath
	}
	if len(path) > MaxPathLength {
		return "", ErrPathTooLong
	}

	pathOnly, _, _ := Split(path)
	if strings.Contains(pathOnly, "\\") {
		return "", ErrBackslashInPath
	}
	if strings.Contains(pathOnly, "\x00") || strings.Contains(strings.ToUpper(pathOnly), "%00") {
		return "", ErrNullByteInPath
	}
	if strings.Contains(pathOnly, "%") {
		if err := validatePercentEscapes(pathOnly); err != nil {
			return "", err
		}
	}
	return path, nil
}

// Split splits input into path, query (without "?") and fragment (without "#").
func Split(input string) (path, query, hash string) {
	rest, hash, _ := strings.Cut(input, "#")
	path, query, _ = strings.Cut(rest, "?")
	return path, query, hash
}

// Join is the inverse of Split.
func Join(path, query, hash string) string {
	var b strings.Builder
	b.Grow(len(path) + len(query) + len(hash) + 2)
	b.WriteString(path)
	if query != "" {
		b.WriteByte('?')
		b.WriteString(query)
	}
	if hash != "" {
		b.WriteByte('#')
		b.WriteString(hash)
	}
	return b.String()
}

// validatePercentEscapes checks that all percent-escapes are %XX hex pairs.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
