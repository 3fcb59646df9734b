package tree

import "strings"

// Separator joins path segments into an identifier. Node names must not contain it.
const Separator = "::"

// Encode joins a root-to-node path into its identifier.
func Encode(path []string) string {
	return strings.Join(path, Separator)
}

// Decode splits an identifier back into its path.
func Decode(id string) []string {
	return strings.Split(id, Separator)
}

func childPath(path []string, key string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = key
	return out
}
