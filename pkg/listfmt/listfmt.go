// Package listfmt renders ordered string sequences as French prose lists.
package listfmt

import "strings"

const (
	separator   = ", "
	conjunction = " et "
)

// Format joins items as "a, b et c". Order is preserved and duplicates are
// kept; an empty input yields "".
func Format(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	head := strings.Join(items[:len(items)-1], separator)
	return head + conjunction + items[len(items)-1]
}
