package realtime

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NeedsRepair reports whether any immediate value under files is a structured
// document rather than a content string. That shape is the legacy
// nested-write defect: "a.b" stored as {a: {b: ...}}.
func NeedsRepair(files map[string]interface{}) bool {
	for _, v := range files {
		switch v.(type) {
		case primitive.D, primitive.M, map[string]interface{}:
			return true
		}
	}
	return false
}

// Flatten converts a possibly nested files structure into a flat
// filename -> content mapping, joining the path segments from the root to
// each leaf string with ".". Applying it to an already-flat mapping returns
// the same mapping unchanged.
func Flatten(files map[string]interface{}) map[string]string {
	out := make(map[string]string, len(files))
	for k, v := range files {
		walkFiles(v, k, out)
	}
	return out
}

func walkFiles(node interface{}, prefix string, out map[string]string) {
	switch v := node.(type) {
	case string:
		out[prefix] = v
	case primitive.D:
		// the bson decoder hands embedded documents back as primitive.D
		for _, e := range v {
			walkFiles(e.Value, prefix+"."+e.Key, out)
		}
	case primitive.M:
		for k, child := range v {
			walkFiles(child, prefix+"."+k, out)
		}
	case map[string]interface{}:
		for k, child := range v {
			walkFiles(child, prefix+"."+k, out)
		}
	}
	// non-string leaves (numbers, nil) are dropped, same as the legacy data
}
