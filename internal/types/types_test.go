package types_test

import (
	"testing"

	"github.com/dirgraph/dirgraph/internal/types"
)

func TestCountNodes(t *testing.T) {
	testCases := []struct {
		name     string
		rootNode *types.Node
		expected int
	}{
		{name: "nil_node", rootNode: nil, expected: 0},
		{name: "leaf", rootNode: &types.Node{Type: types.NodeTypeFile}, expected: 1},
		{
			name: "nested_folders",
			rootNode: &types.Node{
				Type: types.NodeTypeFolder,
				Children: []*types.Node{
					{Type: types.NodeTypeFolder, Children: []*types.Node{{Type: types.NodeTypeFile}}},
					{Type: types.NodeTypeFile},
				},
			},
			expected: 4,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := testCase.rootNode.CountNodes(); actual != testCase.expected {
				t.Errorf("CountNodes: expected %d, got %d", testCase.expected, actual)
			}
		})
	}
}

func TestIsFolder(t *testing.T) {
	folderNode := &types.Node{Type: types.NodeTypeFolder}
	fileNode := &types.Node{Type: types.NodeTypeFile}
	if !folderNode.IsFolder() {
		t.Error("folder node not recognized as folder")
	}
	if fileNode.IsFolder() {
		t.Error("file node recognized as folder")
	}
}
