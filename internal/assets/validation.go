package assets

import (
	"fmt"
	"path"
	"strings"
)

// ValidateAssetName checks that a style name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateTemplatePath checks that p is a clean, relative, slash-separated
// path that cannot escape its root.
func ValidateTemplatePath(p string) error {
	if p == "" || p == "." {
		return fmt.Errorf("%w: empty path", ErrInvalidTemplatePath)
	}
	if strings.ContainsAny(p, "\\\x00") || strings.HasPrefix(p, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidTemplatePath, p)
	}
	if path.Clean(p) != p {
		return fmt.Errorf("%w: %q is not clean", ErrInvalidTemplatePath, p)
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidTemplatePath, p)
		}
	}
	return nil
}
