package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeConfigurationWritesLocalFile(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	workingDirectory := t.TempDir()

	writtenPath, initializeError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		WorkingDirectory: workingDirectory,
	})
	if initializeError != nil {
		t.Fatalf("InitializeConfiguration error: %v", initializeError)
	}
	if writtenPath != filepath.Join(workingDirectory, ConfigFileName) {
		t.Errorf("unexpected configuration path: %s", writtenPath)
	}

	writtenContent, readError := os.ReadFile(writtenPath)
	if readError != nil {
		t.Fatalf("read configuration: %v", readError)
	}
	if !strings.Contains(string(writtenContent), "max_seconds: 15") {
		t.Errorf("template missing default budget:\n%s", writtenContent)
	}

	loadedConfiguration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("load written configuration: %v", loadError)
	}
	if loadedConfiguration.Scan.MaxSeconds == nil || *loadedConfiguration.Scan.MaxSeconds != DefaultMaxSeconds {
		t.Errorf("written template does not round-trip: %v", loadedConfiguration.Scan.MaxSeconds)
	}
}

func TestInitializeConfigurationRefusesOverwriteWithoutForce(t *testing.T) {
	workingDirectory := t.TempDir()

	if _, firstError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		WorkingDirectory: workingDirectory,
	}); firstError != nil {
		t.Fatalf("first InitializeConfiguration error: %v", firstError)
	}

	if _, secondError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		WorkingDirectory: workingDirectory,
	}); secondError == nil {
		t.Fatal("expected error when configuration already exists")
	}

	if _, forcedError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		Force:            true,
		WorkingDirectory: workingDirectory,
	}); forcedError != nil {
		t.Fatalf("forced InitializeConfiguration error: %v", forcedError)
	}
}

func TestInitializeConfigurationGlobalTarget(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)

	writtenPath, initializeError := InitializeConfiguration(InitOptions{Target: InitTargetGlobal})
	if initializeError != nil {
		t.Fatalf("InitializeConfiguration error: %v", initializeError)
	}
	expectedPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, ConfigFileName)
	if writtenPath != expectedPath {
		t.Errorf("global configuration path: expected %s, got %s", expectedPath, writtenPath)
	}
	if _, statError := os.Stat(writtenPath); statError != nil {
		t.Errorf("global configuration file missing: %v", statError)
	}
}
