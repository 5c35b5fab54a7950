package registry

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ssss2art/qtmcp/internal/fw"
)

// idSanitizer strips the text-fallback segment down to the [A-Za-z0-9_]
// alphabet, truncated to 20 chars.
var idSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

// IDCharset is the full set of characters a generated ID may ever contain:
// path separators, collision markers, and numeric shorthand markers in
// addition to the sanitized text alphabet.
var IDCharset = regexp.MustCompile(`^[A-Za-z0-9_#/~]*$`)

func sanitizeText(s string) string {
	s = idSanitizer.ReplaceAllString(s, "_")
	if len(s) > 20 {
		s = s[:20]
	}
	return s
}

// segmentFor computes the single-path-segment label for obj, by priority:
//  1. declarative id (if a declarative item and non-empty)
//  2. object name (if non-empty)
//  3. text-like attribute (if non-empty), as "text_<sanitized>"
//  4. class name, suffixed with "#N" if more than one sibling shares it
//
// siblingIndex/siblingCount are precomputed by the caller (the registry
// knows the sibling set; this function is pure given them).
func segmentFor(obj fw.Object, siblingIndex, siblingClassCount int) string {
	if obj.IsDeclarativeItem() {
		if id := obj.DeclarativeID(); id != "" {
			return id
		}
	}
	if name := obj.ObjectName(); name != "" {
		return name
	}
	if text, ok := obj.Text(); ok && text != "" {
		return "text_" + sanitizeText(text)
	}
	cls := shortClassName(obj.ClassName())
	if siblingClassCount > 1 {
		return cls + "#" + strconv.Itoa(siblingIndex)
	}
	return cls
}

// shortClassName strips a namespace/module prefix if the binding reports
// one with "::" or "." separators; toykit's class names are already short.
func shortClassName(full string) string {
	if i := strings.LastIndexAny(full, ".:"); i >= 0 {
		return full[i+1:]
	}
	return full
}

// siblingsOfSameClass returns the 1-based index of obj among its parent's
// children sharing its class name, and the total count of such siblings.
// Order follows Children(), i.e. creation order.
func siblingsOfSameClass(obj fw.Object) (index, count int) {
	parent := obj.Parent()
	if parent == nil {
		return 1, 1
	}
	idx := 0
	for _, ch := range parent.Children() {
		if ch.ClassName() == obj.ClassName() {
			idx++
			if ch == obj {
				index = idx
			}
		}
	}
	count = idx
	if index == 0 {
		index = count // obj not found among current children (already detached)
	}
	return index, count
}

// pathFor builds the full root-to-obj path, root-first, by walking up
// Parent() and reversing. It does not apply collision suffixes — those are
// a registry-level concern applied at insertion time.
func pathFor(obj fw.Object) string {
	var segs []string
	for o := obj; o != nil; o = o.Parent() {
		idx, cnt := siblingsOfSameClass(o)
		segs = append(segs, segmentFor(o, idx, cnt))
	}
	// segs is target-to-root; reverse to root-to-target.
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, "/")
}
