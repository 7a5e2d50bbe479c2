package scan

import (
	"errors"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

// errSizeBudgetExceeded aborts a size walk once the shared deadline passes.
// It never escapes this package; expiry is a degraded result, not an error.
var errSizeBudgetExceeded = errors.New("size budget exceeded")

// warningSizeWalkMessage is logged when an entry inside a size walk is unreadable.
const warningSizeWalkMessage = "could not access entry during size computation"

// folderSize sums the sizes of all regular files transitively beneath
// folderPath via a secondary walk of that subtree. The shared deadline is
// checked before each directory entered and each file examined; if it has
// passed, the computation aborts and the size is reported as unknown (nil)
// rather than as a partial sum, which would misrepresent the folder as
// smaller than it is. Ignored directory names are pruned exactly as the main
// traversal prunes them, so ignored content never contributes bytes.
// Unreadable entries are logged and omitted from the sum.
func folderSize(folderPath string, state *walkState) *int64 {
	if state.budgetExhausted() {
		return nil
	}

	var totalBytes int64
	rootUnlistable := false

	walkError := filepath.WalkDir(folderPath, func(entryPath string, directoryEntry fs.DirEntry, entryError error) error {
		if state.budgetExhausted() {
			return errSizeBudgetExceeded
		}
		if entryError != nil {
			// An unlistable folder root means the sum would describe
			// nothing; its size stays unknown instead of zero.
			if entryPath == folderPath {
				rootUnlistable = true
			}
			state.logger.Warn(warningSizeWalkMessage,
				zap.String("path", entryPath),
				zap.Error(entryError))
			return nil
		}
		if directoryEntry.IsDir() {
			if entryPath != folderPath && state.isIgnored(directoryEntry.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !directoryEntry.Type().IsRegular() {
			return nil
		}
		entryInformation, entryInfoError := directoryEntry.Info()
		if entryInfoError != nil {
			state.logger.Warn(warningSizeWalkMessage,
				zap.String("path", entryPath),
				zap.Error(entryInfoError))
			return nil
		}
		totalBytes += entryInformation.Size()
		return nil
	})

	if rootUnlistable {
		return nil
	}
	if walkError != nil {
		if errors.Is(walkError, errSizeBudgetExceeded) {
			return nil
		}
		state.logger.Warn(warningSizeWalkMessage,
			zap.String("path", folderPath),
			zap.Error(walkError))
		return nil
	}

	return &totalBytes
}
