package structure

// Outline is a nested mapping of outline labels, built by merging the
// reference paths of extracted records. It exists to assert that a
// document's positional structure matches an expected nesting; it is
// not produced at extraction time.
type Outline map[string]Outline

// Add merges one reference path into the tree, creating intermediate
// nodes as needed. Leaves are empty subtrees.
func (o Outline) Add(ref []string) {
	node := o
	for _, label := range ref {
		child, ok := node[label]
		if !ok || child == nil {
			child = Outline{}
			node[label] = child
		}
		node = child
	}
}

// MergeRefs builds an Outline from a sequence of reference paths.
func MergeRefs(refs [][]string) Outline {
	o := Outline{}
	for _, ref := range refs {
		o.Add(ref)
	}
	return o
}
