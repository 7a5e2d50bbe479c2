package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/dirgraph/dirgraph/internal/types"
)

const (
	// warningListDirectoryMessage is logged when a directory cannot be listed.
	warningListDirectoryMessage = "could not list directory"
	// warningStatEntryMessage is logged when file information cannot be retrieved.
	warningStatEntryMessage = "could not access size of file"
	// infoBudgetExhaustedMessage is logged once when the size budget runs out.
	infoBudgetExhaustedMessage = "size budget exhausted; remaining folder sizes reported as unknown"

	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorRootFormat wraps root validation failures with the offending path.
	errorRootFormat = "root %s: %w"
)

var (
	// ErrRootNotFound indicates the supplied root path does not exist.
	ErrRootNotFound = errors.New("root path does not exist")
	// ErrRootNotADirectory indicates the supplied root path is not a directory.
	ErrRootNotADirectory = errors.New("root path is not a directory")
)

// TreeBuilder builds directory tree documents using the configured options.
type TreeBuilder struct {
	// IgnoreNames lists bare directory names that are pruned before descent.
	// An ignored directory and everything beneath it contribute no nodes.
	IgnoreNames []string
	// TimeBudget bounds the total time spent computing folder sizes across
	// the whole build. Zero disables the budget.
	TimeBudget time.Duration
	// Logger receives non-fatal per-entry diagnostics. Nil disables them.
	Logger *zap.Logger
}

// walkState carries the per-build traversal state: the shared size deadline,
// the one-way expiry latch, and the set of paths already present in the tree.
type walkState struct {
	deadline  time.Time
	expired   bool
	ignoreSet map[string]struct{}
	visited   map[string]struct{}
	logger    *zap.Logger
}

// budgetExhausted reports whether the shared deadline has passed. Once it
// has, the latch keeps every later size computation in the same build
// exhausted as well; the budget is never replenished mid-build.
func (state *walkState) budgetExhausted() bool {
	if state.expired {
		return true
	}
	if state.deadline.IsZero() {
		return false
	}
	if time.Now().After(state.deadline) {
		state.expired = true
		state.logger.Info(infoBudgetExhaustedMessage)
		return true
	}
	return false
}

// isIgnored reports whether a directory base name is in the ignore set.
func (state *walkState) isIgnored(directoryName string) bool {
	_, ignored := state.ignoreSet[directoryName]
	return ignored
}

// Build walks the filesystem under rootPath and returns the rooted tree
// document. The root node's identifier is the absolute, cleaned form of
// rootPath. The only fatal conditions are the root path not existing or not
// being a directory; every per-entry failure is logged and absorbed.
func (treeBuilder *TreeBuilder) Build(rootPath string) (*types.Node, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	absoluteRootPath = filepath.Clean(absoluteRootPath)

	rootInformation, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		if os.IsNotExist(rootStatError) {
			return nil, fmt.Errorf(errorRootFormat, absoluteRootPath, ErrRootNotFound)
		}
		return nil, fmt.Errorf(errorRootFormat, absoluteRootPath, rootStatError)
	}
	if !rootInformation.IsDir() {
		return nil, fmt.Errorf(errorRootFormat, absoluteRootPath, ErrRootNotADirectory)
	}

	state := &walkState{
		ignoreSet: make(map[string]struct{}, len(treeBuilder.IgnoreNames)),
		visited:   make(map[string]struct{}),
		logger:    treeBuilder.Logger,
	}
	if state.logger == nil {
		state.logger = zap.NewNop()
	}
	for _, ignoreName := range treeBuilder.IgnoreNames {
		state.ignoreSet[ignoreName] = struct{}{}
	}
	if treeBuilder.TimeBudget > 0 {
		// The deadline is fixed once for the whole build and shared across
		// all folder size computations, not reset per directory.
		state.deadline = time.Now().Add(treeBuilder.TimeBudget)
	}

	rootNode := &types.Node{
		Path: absoluteRootPath,
		Name: baseNameOrSelf(absoluteRootPath),
		Type: types.NodeTypeFolder,
	}
	state.visited[absoluteRootPath] = struct{}{}
	rootNode.SizeBytes = folderSize(absoluteRootPath, state)
	rootNode.Children = buildChildNodes(absoluteRootPath, state)

	return rootNode, nil
}

// buildChildNodes lists one directory and returns its child nodes in
// traversal order: surviving subdirectories first, then regular files. A directory
// that cannot be listed contributes no children; the walk continues
// elsewhere.
func buildChildNodes(directoryPath string, state *walkState) []*types.Node {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		state.logger.Warn(warningListDirectoryMessage,
			zap.String("path", directoryPath),
			zap.Error(readDirectoryError))
		return nil
	}

	var childNodes []*types.Node

	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		if state.isIgnored(directoryEntry.Name()) {
			continue
		}
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		if _, alreadyVisited := state.visited[childPath]; alreadyVisited {
			// Path identity, not name identity, guards against revisits
			// caused by symlinks or walk-order artifacts.
			continue
		}
		state.visited[childPath] = struct{}{}

		childNode := &types.Node{
			Path: childPath,
			Name: directoryEntry.Name(),
			Type: types.NodeTypeFolder,
		}
		childNode.SizeBytes = folderSize(childPath, state)
		childNode.Children = buildChildNodes(childPath, state)
		childNodes = append(childNodes, childNode)
	}

	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		if !directoryEntry.Type().IsRegular() {
			// Symlinks, fifos, and sockets contribute no bytes to folder
			// sums, so they carry no leaf either; sums stay consistent with
			// the displayed children.
			continue
		}
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		entryInformation, entryInfoError := directoryEntry.Info()
		if entryInfoError != nil {
			// The entry vanished or is unreadable; it is omitted from the
			// children and from every ancestor's size sum.
			state.logger.Warn(warningStatEntryMessage,
				zap.String("path", childPath),
				zap.Error(entryInfoError))
			continue
		}
		if _, alreadyVisited := state.visited[childPath]; alreadyVisited {
			continue
		}
		state.visited[childPath] = struct{}{}

		fileSize := entryInformation.Size()
		childNodes = append(childNodes, &types.Node{
			Path:      childPath,
			Name:      directoryEntry.Name(),
			Type:      types.NodeTypeFile,
			SizeBytes: &fileSize,
		})
	}

	return childNodes
}

// baseNameOrSelf returns the last path segment, or the path itself when the
// base is empty or a separator (for example a filesystem root).
func baseNameOrSelf(path string) string {
	baseName := filepath.Base(path)
	if baseName == "." || baseName == string(filepath.Separator) {
		return path
	}
	return baseName
}
