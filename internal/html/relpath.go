package html

import "strings"

// relPath returns a path to dst relative to the directory src.
// Both are slash-separated paths relative to the site root.
// "." or "" is the site root itself.
func relPath(src, dst string) string {
	srcParts := splitPath(src)
	dstParts := splitPath(dst)

	// Drop the shared leading directories.
	for len(srcParts) > 0 && len(dstParts) > 0 && srcParts[0] == dstParts[0] {
		srcParts, dstParts = srcParts[1:], dstParts[1:]
	}

	parts := make([]string, 0, len(srcParts)+len(dstParts))
	for range srcParts {
		parts = append(parts, "..")
	}
	parts = append(parts, dstParts...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}
