package utils_test

import (
	"testing"

	"github.com/dirgraph/dirgraph/internal/utils"
)

func TestDeduplicateNames(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "empty", input: nil, expected: []string{}},
		{name: "no_duplicates", input: []string{".git", "venv"}, expected: []string{".git", "venv"}},
		{name: "duplicates_keep_first", input: []string{"bin", ".git", "bin", ".git"}, expected: []string{"bin", ".git"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := utils.DeduplicateNames(testCase.input)
			if len(actual) != len(testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, actual)
			}
			for valueIndex := range actual {
				if actual[valueIndex] != testCase.expected[valueIndex] {
					t.Fatalf("expected %v, got %v", testCase.expected, actual)
				}
			}
		})
	}
}
