// Package naming derives directory and component names from the module name
// a user types.
package naming

import (
	"runtime"
	"strings"
	"unicode"
)

// Chunks splits s before every uppercase letter or digit, turns every other
// non-alphanumeric rune into a separator and drops empty pieces.
//
//	"UserCard"   -> ["User", "Card"]
//	"user card"  -> ["user", "card"]
//	"Card2_list" -> ["Card", "2", "list"]
func Chunks(s string) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case isUpperASCII(r) || isDigitASCII(r):
			flush()
			current.WriteRune(r)
		case isLowerASCII(r):
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return chunks
}

// DirName converts a module name to the kebab-case directory it lives in.
// "UserCard" -> "user-card"
func DirName(s string) string {
	return strings.ToLower(strings.Join(Chunks(s), "-"))
}

// ComponentName converts a module name to PascalCase.
// "user card" -> "UserCard"
func ComponentName(s string) string {
	var result strings.Builder
	for _, chunk := range Chunks(s) {
		runes := []rune(chunk)
		result.WriteRune(unicode.ToUpper(runes[0]))
		result.WriteString(string(runes[1:]))
	}
	return result.String()
}

// TidyPath strips the leading slash some shells prepend to Windows drive
// paths ("/c:/src" -> "c:/src"). It is a no-op elsewhere.
func TidyPath(p string) string {
	return tidyPath(p, runtime.GOOS)
}

func tidyPath(p, goos string) string {
	if goos == "windows" && strings.HasPrefix(p, "/") {
		return p[1:]
	}
	return p
}

func isUpperASCII(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLowerASCII(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigitASCII(r rune) bool { return r >= '0' && r <= '9' }
