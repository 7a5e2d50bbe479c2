// Package types defines the cross‑package data structures used by the dirgraph CLI.
package types

const (
	// NodeTypeFolder marks a node that represents a directory.
	NodeTypeFolder = "folder"
	// NodeTypeFile marks a node that represents a regular file.
	NodeTypeFile = "file"
)

// Node is one entry of the tree document produced by the scanner.
//
// The identifier is the absolute, cleaned path of the entry. Paths are used
// instead of bare names because names repeat across nested directories; path
// uniqueness is what keeps the document a well-formed tree. SizeBytes is nil
// when the size could not be computed, either because the entry was
// unreadable or because the size walk ran past the build deadline. The JSON
// shape matches what d3.hierarchy consumes.
type Node struct {
	Path      string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	SizeBytes *int64  `json:"size_bytes"`
	Children  []*Node `json:"children,omitempty"`
}

// IsFolder reports whether the node represents a directory.
func (node *Node) IsFolder() bool {
	return node.Type == NodeTypeFolder
}

// CountNodes returns the number of nodes in the subtree rooted at the node,
// including the node itself.
func (node *Node) CountNodes() int {
	if node == nil {
		return 0
	}
	total := 1
	for _, childNode := range node.Children {
		total += childNode.CountNodes()
	}
	return total
}
