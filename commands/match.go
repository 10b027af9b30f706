package commands

import (
	"errors"
	"fmt"
	"strings"

	"Switchback/internal/items"
)

// ErrAmbiguousItem reports a partial name matching several table items.
var ErrAmbiguousItem = errors.New("ambiguous item name")

// resolveItem maps user input onto a table item. An exact name wins; failing
// that, a case-insensitive prefix of the whole name or of any word in it must
// identify a single item.
func resolveItem(reg *items.Registry, target string) (*items.Info, error) {
	trimmed := strings.TrimSpace(target)
	if info, err := reg.Lookup(trimmed); err == nil {
		return info, nil
	}
	needle := strings.ToLower(trimmed)
	if needle == "" {
		return nil, fmt.Errorf("%w: empty name", items.ErrUnknownItem)
	}

	var matches []*items.Info
	for _, info := range reg.All() {
		candidate := strings.ToLower(info.Name)
		if candidate == needle {
			return info, nil
		}
		if strings.HasPrefix(candidate, needle) || wordPrefix(candidate, needle) {
			matches = append(matches, info)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", items.ErrUnknownItem, trimmed)
	case 1:
		return matches[0], nil
	}
	names := make([]string, 0, 4)
	for i, info := range matches {
		if i == 3 {
			names = append(names, fmt.Sprintf("and %d more", len(matches)-i))
			break
		}
		names = append(names, info.Name)
	}
	return nil, fmt.Errorf("%w: %q could be %s", ErrAmbiguousItem, trimmed, strings.Join(names, ", "))
}

func wordPrefix(candidate, needle string) bool {
	for _, word := range strings.Fields(candidate) {
		if strings.HasPrefix(strings.Trim(word, "()"), needle) {
			return true
		}
	}
	return false
}
