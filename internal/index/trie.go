package index

import (
	"sort"
	"strings"
)

// Trie is a prefix tree over lowercase gig-title words, backing search
// suggestions.
type Trie struct {
	root *trieNode
}

type trieNode struct {
	children map[rune]*trieNode
	terminal bool
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Insert lowercases word and adds it to the tree. Empty words are ignored.
func (t *Trie) Insert(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}

	node := t.root
	for _, r := range word {
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		node = child
	}
	node.terminal = true
}

// Search returns every completed word under prefix. A prefix that matches
// no path returns an empty slice. Collection is depth-first with sorted
// child order, so results are deterministic for a fixed insertion set.
func (t *Trie) Search(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	results := []string{}
	if prefix == "" {
		return results
	}

	node := t.root
	for _, r := range prefix {
		child, ok := node.children[r]
		if !ok {
			return results
		}
		node = child
	}

	collect(node, prefix, &results)
	return results
}

func collect(node *trieNode, prefix string, results *[]string) {
	if node.terminal {
		*results = append(*results, prefix)
	}

	runes := make([]rune, 0, len(node.children))
	for r := range node.children {
		runes = append(runes, r)
	}
	// map iteration order is random; sort for deterministic output
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	for _, r := range runes {
		collect(node.children[r], prefix+string(r), results)
	}
}
