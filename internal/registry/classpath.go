package registry

import (
	"fmt"
	"strings"
)

// ParseClassPath splits a module-qualified class path of the form
// "pkg.sub.mod:ClassName" into its module and class parts. The
// external server imports the module and looks up the class by name,
// so a malformed path is a guaranteed startup failure and is rejected
// here instead.
func ParseClassPath(classPath string) (module, class string, err error) {
	module, class, ok := strings.Cut(classPath, ":")
	if !ok {
		return "", "", fmt.Errorf("class path %q: missing ':' separator", classPath)
	}
	if module == "" {
		return "", "", fmt.Errorf("class path %q: empty module", classPath)
	}
	if class == "" {
		return "", "", fmt.Errorf("class path %q: empty class name", classPath)
	}
	if strings.Contains(class, ":") {
		return "", "", fmt.Errorf("class path %q: multiple ':' separators", classPath)
	}
	for _, part := range strings.Split(module, ".") {
		if !isIdentifier(part) {
			return "", "", fmt.Errorf("class path %q: invalid module segment %q", classPath, part)
		}
	}
	if !isIdentifier(class) {
		return "", "", fmt.Errorf("class path %q: invalid class name %q", classPath, class)
	}
	return module, class, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
