package shapes

import "sort"

// FileVariableIndex maps each file path to the set of variable names
// declared for it. One index exists per role; it must only be read after
// every record of the run has been consumed, because the conjunction
// builder needs the complete variable set per file.
type FileVariableIndex struct {
	variables map[string]map[string]struct{}
	order     []string // file paths in first-seen order
}

// NewFileVariableIndex returns an empty index.
func NewFileVariableIndex() *FileVariableIndex {
	return &FileVariableIndex{variables: make(map[string]map[string]struct{})}
}

// AddFile ensures an entry exists for the file path, so files without
// variables still get a node shape but no conjunction.
func (idx *FileVariableIndex) AddFile(path string) {
	if _, ok := idx.variables[path]; !ok {
		idx.variables[path] = make(map[string]struct{})
		idx.order = append(idx.order, path)
	}
}

// AddVariable records a variable for the file path. Duplicate pairs are
// silently absorbed.
func (idx *FileVariableIndex) AddVariable(path, variable string) {
	idx.AddFile(path)
	idx.variables[path][variable] = struct{}{}
}

// Files returns the file paths in first-seen order.
func (idx *FileVariableIndex) Files() []string {
	return idx.order
}

// Variables returns the distinct variable names for a path, sorted.
func (idx *FileVariableIndex) Variables(path string) []string {
	set, ok := idx.variables[path]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct file paths.
func (idx *FileVariableIndex) Len() int {
	return len(idx.order)
}
