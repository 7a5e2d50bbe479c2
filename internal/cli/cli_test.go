package cli

import (
	"testing"

	"go.uber.org/zap"

	"github.com/dirgraph/dirgraph/internal/config"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func floatPointer(value float64) *float64 {
	pointer := value
	return &pointer
}

func TestResolveScanOptionsPrecedence(t *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		configuration   config.ApplicationConfiguration
		expectIgnore    []string
		expectMax       float64
		expectDirectory string
		expectFilename  string
		expectPreview   bool
		expectCopy      bool
	}{
		{
			name:            "builtin_defaults",
			arguments:       nil,
			expectIgnore:    config.DefaultIgnoreNames(),
			expectMax:       config.DefaultMaxSeconds,
			expectDirectory: defaultPath,
			expectFilename:  config.DefaultOutputFileName,
		},
		{
			name:      "configuration_file_replaces_defaults",
			arguments: nil,
			configuration: config.ApplicationConfiguration{
				Scan: config.ScanConfiguration{
					Ignore:     []string{"node_modules"},
					MaxSeconds: floatPointer(30),
				},
				Output: config.OutputConfiguration{
					Directory: "viz",
					Filename:  "tree.json",
					Preview:   boolPointer(true),
				},
			},
			expectIgnore:    []string{"node_modules"},
			expectMax:       30,
			expectDirectory: "viz",
			expectFilename:  "tree.json",
			expectPreview:   true,
		},
		{
			name:      "configuration_ignore_duplicates_are_collapsed",
			arguments: nil,
			configuration: config.ApplicationConfiguration{
				Scan: config.ScanConfiguration{
					Ignore: []string{"node_modules", "dist", "node_modules"},
				},
			},
			expectIgnore:    []string{"node_modules", "dist"},
			expectMax:       config.DefaultMaxSeconds,
			expectDirectory: defaultPath,
			expectFilename:  config.DefaultOutputFileName,
		},
		{
			name:      "flags_override_configuration",
			arguments: []string{"-i", "target", "-i", "target", "--max-seconds", "2", "--preview=false", "--copy"},
			configuration: config.ApplicationConfiguration{
				Scan: config.ScanConfiguration{
					Ignore:     []string{"node_modules"},
					MaxSeconds: floatPointer(30),
				},
				Output: config.OutputConfiguration{
					Preview: boolPointer(true),
					Copy:    boolPointer(false),
				},
			},
			expectIgnore:    []string{"target"},
			expectMax:       2,
			expectDirectory: defaultPath,
			expectFilename:  config.DefaultOutputFileName,
			expectPreview:   false,
			expectCopy:      true,
		},
		{
			name:            "zero_budget_disables_limit",
			arguments:       []string{"--max-seconds", "0"},
			expectIgnore:    config.DefaultIgnoreNames(),
			expectMax:       0,
			expectDirectory: defaultPath,
			expectFilename:  config.DefaultOutputFileName,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := createRootCommand(zap.NewNop())
			if parseError := command.ParseFlags(testCase.arguments); parseError != nil {
				t.Fatalf("ParseFlags error: %v", parseError)
			}

			options := resolveScanOptions(command, testCase.configuration)

			if len(options.ignoreNames) != len(testCase.expectIgnore) {
				t.Fatalf("ignore names: expected %v, got %v", testCase.expectIgnore, options.ignoreNames)
			}
			for nameIndex := range options.ignoreNames {
				if options.ignoreNames[nameIndex] != testCase.expectIgnore[nameIndex] {
					t.Fatalf("ignore names: expected %v, got %v", testCase.expectIgnore, options.ignoreNames)
				}
			}
			if options.maxSeconds != testCase.expectMax {
				t.Errorf("max seconds: expected %v, got %v", testCase.expectMax, options.maxSeconds)
			}
			if options.outputDirectory != testCase.expectDirectory {
				t.Errorf("output directory: expected %q, got %q", testCase.expectDirectory, options.outputDirectory)
			}
			if options.outputFileName != testCase.expectFilename {
				t.Errorf("output filename: expected %q, got %q", testCase.expectFilename, options.outputFileName)
			}
			if options.previewEnabled != testCase.expectPreview {
				t.Errorf("preview: expected %t, got %t", testCase.expectPreview, options.previewEnabled)
			}
			if options.copyEnabled != testCase.expectCopy {
				t.Errorf("copy: expected %t, got %t", testCase.expectCopy, options.copyEnabled)
			}
		})
	}
}
