package descriptor

import "sort"

// SourceFolder pairs a source folder with the excludes applied to it. It is immutable once
// constructed: the constructor copies its inputs and the accessors hand out copies.
type SourceFolder struct {
	path            string
	fileExcludes    []string
	contentExcludes []string
}

// NewSourceFolder creates a SourceFolder for path. Exclude sets are deduplicated and sorted;
// nil sets are treated as empty.
func NewSourceFolder(path string, fileExcludes, contentExcludes []string) SourceFolder {
	return SourceFolder{
		path:            path,
		fileExcludes:    toSet(fileExcludes),
		contentExcludes: toSet(contentExcludes),
	}
}

// Path returns the source folder.
func (s SourceFolder) Path() string {
	return s.path
}

// FileExcludes returns the filename glob excludes.
func (s SourceFolder) FileExcludes() []string {
	return append([]string{}, s.fileExcludes...)
}

// ContentExcludes returns the content regexp excludes.
func (s SourceFolder) ContentExcludes() []string {
	return append([]string{}, s.contentExcludes...)
}

func toSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	set := []string{}
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		set = append(set, v)
	}
	sort.Strings(set)
	return set
}
