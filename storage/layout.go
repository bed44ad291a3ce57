package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const assetsDirName = "assets"

// Layout derives the on-disk folders of applications under Root.
type Layout struct {
	Root string
}

// AppDirs are the folders of a single application.
type AppDirs struct {
	AppDir    string
	AssetsDir string
}

func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// Dirs returns the folders for appID without touching the filesystem.
func (l Layout) Dirs(appID string) AppDirs {
	appDir := filepath.Join(l.Root, appID)
	return AppDirs{
		AppDir:    appDir,
		AssetsDir: filepath.Join(appDir, assetsDirName),
	}
}

// EnsureAppDirectories creates {root}/{appID} and {root}/{appID}/assets.
// Existing folders are left as they are, so a run interrupted between the
// two creations is completed by the next call.
func (l Layout) EnsureAppDirectories(appID string) (AppDirs, error) {
	if appID == "" || appID != filepath.Base(appID) || appID == "." || appID == ".." {
		return AppDirs{}, fmt.Errorf("invalid application id %q", appID)
	}

	dirs := l.Dirs(appID)
	if err := os.MkdirAll(dirs.AppDir, 0o755); err != nil {
		return AppDirs{}, fmt.Errorf("create application dir: %w", err)
	}
	if err := os.MkdirAll(dirs.AssetsDir, 0o755); err != nil {
		return AppDirs{}, fmt.Errorf("create assets dir: %w", err)
	}
	return dirs, nil
}

// RemoveApp deletes the folder of appID and everything in it.
func (l Layout) RemoveApp(appID string) error {
	if appID == "" || appID != filepath.Base(appID) || appID == "." || appID == ".." {
		return fmt.Errorf("invalid application id %q", appID)
	}
	return os.RemoveAll(l.Dirs(appID).AppDir)
}
