package cache

import (
	"fmt"
	"strconv"
)

// ListID is the wildcard identifier for "any item of this type". An entry
// carrying a list tag is invalidated by every invalidation of the same type.
const ListID = "LIST"

// Tag is a (type, id) label attached to cache entries, used to decide which
// cached reads must be invalidated after a write.
type Tag struct {
	Type string
	ID   string
}

// NewTag creates a tag, normalizing numeric identifiers to their decimal
// string form so tags compare by value regardless of the source type.
func NewTag(tagType string, id any) Tag {
	return Tag{Type: tagType, ID: normalizeID(id)}
}

// List creates the wildcard list tag for a type.
func List(tagType string) Tag {
	return Tag{Type: tagType, ID: ListID}
}

// IsList reports whether the tag is a wildcard list tag.
func (t Tag) IsList() bool {
	return t.ID == ListID
}

func (t Tag) String() string {
	return t.Type + ":" + t.ID
}

func normalizeID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// matchesAny reports whether an entry carrying entryTags is hit by any of
// the invalidation tags. An entry matches an invalidation tag (T, X) when it
// carries (T, X) exactly, or when it carries the list tag (T, LIST). List
// tags act as wildcards for "any item of this type changed".
func matchesAny(entryTags, invalidation []Tag) bool {
	for _, inv := range invalidation {
		for _, et := range entryTags {
			if et.Type != inv.Type {
				continue
			}
			if et.ID == inv.ID || et.ID == ListID {
				return true
			}
		}
	}
	return false
}
