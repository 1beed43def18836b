package skills

// TrieMatcher is a byte trie over the terms. It scans in time linear in the
// text times the longest term, independent of the number of terms.
type TrieMatcher struct {
	root *trieNode
}

type trieNode struct {
	children map[byte]*trieNode
	terminal bool
}

// NewTrieMatcher builds a trie from terms. With no terms the matcher matches
// nothing.
func NewTrieMatcher(terms []string) *TrieMatcher {
	root := &trieNode{children: make(map[byte]*trieNode)}
	for _, t := range sortByLengthDesc(terms) {
		node := root
		for i := 0; i < len(t); i++ {
			next, ok := node.children[t[i]]
			if !ok {
				next = &trieNode{children: make(map[byte]*trieNode)}
				node.children[t[i]] = next
			}
			node = next
		}
		node.terminal = true
	}
	return &TrieMatcher{root: root}
}

// FindAll returns every match in lower, in text order.
func (m *TrieMatcher) FindAll(lower string) []string {
	var matches []string

	i := 0
	for i < len(lower) {
		end := m.longestAt(lower, i)
		if end < 0 {
			i++
			continue
		}
		matches = append(matches, lower[i:end])
		i = end
	}
	return matches
}

// longestAt returns the end of the longest term starting at i that satisfies
// the boundary rules, or -1.
func (m *TrieMatcher) longestAt(text string, i int) int {
	// a term starting with a word byte needs a boundary before it
	if isWordByte(text[i]) && i > 0 && isWordByte(text[i-1]) {
		return -1
	}

	end := -1
	node := m.root
	for j := i; j < len(text); j++ {
		next, ok := node.children[text[j]]
		if !ok {
			break
		}
		node = next
		if !node.terminal {
			continue
		}
		last := text[j]
		if isWordByte(last) && j+1 < len(text) && isWordByte(text[j+1]) {
			continue
		}
		end = j + 1
	}
	return end
}
