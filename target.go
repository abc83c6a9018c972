package main

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"imgv/internal/logger"
)

// Target is the directory to browse and, when a file was named, the file to start on
type Target struct {
	Dir      string
	Selected string
}

// resolveTarget turns the command line argument into a Target. A path that
// does not exist falls back to the current directory and is reported as
// PathNotFound alongside the usable fallback.
func resolveTarget(arg string) (Target, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	if arg == "" {
		return Target{Dir: cwd}, nil
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return Target{Dir: cwd}, newViewerError(PathNotFound, arg, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Target{Dir: cwd}, newViewerError(PathNotFound, arg, err)
	}

	if info.IsDir() {
		return Target{Dir: abs}, nil
	}
	return Target{Dir: filepath.Dir(abs), Selected: abs}, nil
}

// Session is the navigable image list for one target
type Session struct {
	Target  Target
	Entries []ImagePath
	Cursor  *Cursor
}

// Current returns the entry under the cursor
func (s *Session) Current() (ImagePath, bool) {
	if !s.Cursor.Valid() {
		return ImagePath{}, false
	}
	return s.Entries[s.Cursor.Index()], true
}

// openSession scans the target directory and places the cursor on the
// selected file when it is part of the list. An empty list is returned
// together with an EmptyDirectory error.
func openSession(target Target, scanner *Scanner) (*Session, error) {
	entries := scanner.Scan(target.Dir)
	session := &Session{
		Target:  target,
		Entries: entries,
		Cursor:  NewCursor(len(entries)),
	}

	if len(entries) == 0 {
		return session, newViewerError(EmptyDirectory, target.Dir, nil)
	}

	if target.Selected != "" {
		if idx := indexOfPath(entries, target.Selected); idx >= 0 {
			session.Cursor.Seek(idx)
		} else {
			logger.Debug("Selected file is not a navigable image",
				zap.String("path", target.Selected))
		}
	}

	return session, nil
}

// comparablePath cleans p and folds it to NFC; some filesystems return
// decomposed names that differ byte-wise from what the user typed
func comparablePath(p string) string {
	return norm.NFC.String(filepath.Clean(p))
}

// indexOfPath finds a plain file entry by path, or -1
func indexOfPath(entries []ImagePath, path string) int {
	want := comparablePath(path)
	for i, entry := range entries {
		if entry.ArchivePath == "" && comparablePath(entry.Path) == want {
			return i
		}
	}
	return -1
}
