// Package output serializes tree documents and renders console previews.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/dirgraph/dirgraph/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	// unknownSizeLabel is shown on the console when a size is absent. The
	// JSON document keeps the absence as null; the visualization renders
	// null as zero, a documented simplification that collapses "empty"
	// and "unknown".
	unknownSizeLabel = "unknown"

	outputDirectoryPermissions = 0o755
	outputFilePermissions      = 0o644
)

// RenderJSON marshals the tree document as indented JSON.
func RenderJSON(rootNode *types.Node) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(rootNode, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", fmt.Errorf("marshaling tree document: %w", jsonEncodeError)
	}
	return string(encoded), nil
}

// WriteDocument renders the tree document and writes it into the output
// directory, creating the directory if needed. It returns the absolute path
// of the written file.
func WriteDocument(rootNode *types.Node, outputDirectory string, fileName string) (string, error) {
	absoluteOutputDirectory, absolutePathError := filepath.Abs(outputDirectory)
	if absolutePathError != nil {
		return "", fmt.Errorf("getting absolute path for %s: %w", outputDirectory, absolutePathError)
	}
	if mkdirError := os.MkdirAll(absoluteOutputDirectory, outputDirectoryPermissions); mkdirError != nil {
		return "", fmt.Errorf("creating output directory %s: %w", absoluteOutputDirectory, mkdirError)
	}

	documentJSON, renderError := RenderJSON(rootNode)
	if renderError != nil {
		return "", renderError
	}

	documentPath := filepath.Join(absoluteOutputDirectory, fileName)
	if writeError := os.WriteFile(documentPath, []byte(documentJSON), outputFilePermissions); writeError != nil {
		return "", fmt.Errorf("writing tree document to %s: %w", documentPath, writeError)
	}
	return documentPath, nil
}

// RenderRaw prints an ASCII tree preview of the document with
// human-readable sizes.
func RenderRaw(rootNode *types.Node, writer io.Writer) {
	if rootNode == nil {
		return
	}
	fmt.Fprintf(writer, "%s (%s)\n", rootNode.Name, formatNodeSize(rootNode))
	renderRawChildren(rootNode, writer, "")
}

// renderRawChildren prints the children of a folder node using branch
// connectors, recursing into child folders.
func renderRawChildren(treeNode *types.Node, writer io.Writer, prefix string) {
	numberOfChildren := len(treeNode.Children)
	for childIndex, childNode := range treeNode.Children {
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if childIndex == numberOfChildren-1 {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}
		fmt.Fprintf(writer, "%s%s%s (%s)\n", prefix, connector, childNode.Name, formatNodeSize(childNode))
		if childNode.IsFolder() {
			renderRawChildren(childNode, writer, childPrefix)
		}
	}
}

// FormatSummaryLine returns a one-line summary of the document: node count
// and the root size when known.
func FormatSummaryLine(rootNode *types.Node) string {
	return fmt.Sprintf("%d nodes, total size %s", rootNode.CountNodes(), formatNodeSize(rootNode))
}

// formatNodeSize renders a node size for the console, labeling absent sizes
// as unknown instead of collapsing them into zero.
func formatNodeSize(treeNode *types.Node) string {
	if treeNode.SizeBytes == nil {
		return unknownSizeLabel
	}
	return humanize.Bytes(uint64(*treeNode.SizeBytes))
}
