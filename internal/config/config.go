// Package config defines scan defaults and loads the application configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the name of the application configuration file.
	ConfigFileName = ".dirgraph.yaml"
	// GlobalConfigDirectoryName is the directory under the user home that
	// holds the global configuration file.
	GlobalConfigDirectoryName = ".dirgraph"
	// DefaultOutputFileName is the tree document file written by default.
	DefaultOutputFileName = "data.json"
	// DefaultMaxSeconds is the default time budget for folder size
	// computation. Zero disables the budget.
	DefaultMaxSeconds float64 = 15

	configurationTypeYAML = "yaml"
)

// defaultIgnoreNames lists the directory names excluded from scans unless the
// caller supplies a replacement list: version-control metadata, virtual
// environments, and bytecode caches.
var defaultIgnoreNames = []string{
	".git",
	".venv",
	"venv",
	"bin",
	"__pycache__",
	".ipynb_checkpoints",
}

// DefaultIgnoreNames returns a fresh copy of the built-in ignore list. A
// caller-supplied ignore list replaces this default outright; it never
// extends it, and the default itself is never mutated.
func DefaultIgnoreNames() []string {
	names := make([]string, len(defaultIgnoreNames))
	copy(names, defaultIgnoreNames)
	return names
}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds file-based defaults for the scanner and the
// output stage. Flag values take precedence over every file value.
type ApplicationConfiguration struct {
	Scan   ScanConfiguration   `mapstructure:"scan"`
	Output OutputConfiguration `mapstructure:"output"`
}

// ScanConfiguration configures the tree builder.
type ScanConfiguration struct {
	// Ignore replaces the built-in ignore list when non-empty.
	Ignore []string `mapstructure:"ignore"`
	// MaxSeconds is the size computation time budget; zero disables it.
	MaxSeconds *float64 `mapstructure:"max_seconds"`
}

// OutputConfiguration configures where and how the tree document is emitted.
type OutputConfiguration struct {
	Directory string `mapstructure:"directory"`
	Filename  string `mapstructure:"filename"`
	Preview   *bool  `mapstructure:"preview"`
	Copy      *bool  `mapstructure:"copy"`
}

// Merge overlays the other configuration on top of the receiver and returns
// the result. Values present in other win; absent values keep the receiver's.
func (configuration ApplicationConfiguration) Merge(other ApplicationConfiguration) ApplicationConfiguration {
	merged := configuration
	if len(other.Scan.Ignore) > 0 {
		merged.Scan.Ignore = append([]string(nil), other.Scan.Ignore...)
	}
	if other.Scan.MaxSeconds != nil {
		merged.Scan.MaxSeconds = cloneFloatPointer(other.Scan.MaxSeconds)
	}
	if other.Output.Directory != "" {
		merged.Output.Directory = other.Output.Directory
	}
	if other.Output.Filename != "" {
		merged.Output.Filename = other.Output.Filename
	}
	if other.Output.Preview != nil {
		merged.Output.Preview = cloneBoolPointer(other.Output.Preview)
	}
	if other.Output.Copy != nil {
		merged.Output.Copy = cloneBoolPointer(other.Output.Copy)
	}
	return merged
}

// LoadApplicationConfiguration loads configuration from the global and local
// files and merges them, local values winning over global ones. Missing
// discovered files are not errors; a missing explicitly supplied file is.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath := filepath.Join(workingDirectory, ConfigFileName)
	if options.ExplicitFilePath != "" {
		if filepath.IsAbs(options.ExplicitFilePath) {
			localPath = options.ExplicitFilePath
		} else {
			localPath = filepath.Join(workingDirectory, options.ExplicitFilePath)
		}
		// An explicitly requested file must exist; only the discovered
		// default locations may be silently absent.
		if _, statError := os.Stat(localPath); statError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("configuration file %s: %w", localPath, statError)
		}
	}
	localConfiguration, loadError := loadConfigurationFromPath(localPath)
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	merged = merged.Merge(localConfiguration)

	return merged, nil
}

// loadConfigurationFromPath reads one configuration file. A missing file
// yields an empty configuration.
func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigFile(configurationPath)
	viperInstance.SetConfigType(configurationTypeYAML)

	if readError := viperInstance.ReadInConfig(); readError != nil {
		var pathError *fs.PathError
		if errors.As(readError, &pathError) || os.IsNotExist(readError) {
			return ApplicationConfiguration{}, nil
		}
		var notFoundError viper.ConfigFileNotFoundError
		if errors.As(readError, &notFoundError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("read configuration %s: %w", configurationPath, readError)
	}

	var configuration ApplicationConfiguration
	if unmarshalError := viperInstance.Unmarshal(&configuration); unmarshalError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("parse configuration %s: %w", configurationPath, unmarshalError)
	}
	return configuration, nil
}

func cloneBoolPointer(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneFloatPointer(value *float64) *float64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
