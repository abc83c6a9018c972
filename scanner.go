package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"imgv/internal/logger"
)

// supportedExtensions is the canonical allow-list. Every entry has a decoder
// registered in decode.go.
var supportedExtensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp"}

var archiveExtensions = []string{"zip", "rar", "7z"}

type ImagePath struct {
	Path        string    // Local file path or archive:entry format
	ArchivePath string    // Empty for regular files, path to archive for entries
	EntryPath   string    // Empty for regular files, path within archive for entries
	ModTime     time.Time // Used by the modification time sort
}

// Name returns the file name shown to the user
func (p ImagePath) Name() string {
	if p.EntryPath != "" {
		return archiveMemberName(p.EntryPath)
	}
	return filepath.Base(p.Path)
}

// ScanOptions controls which files a Scanner accepts and in which order
type ScanOptions struct {
	Recursive     bool
	CaseSensitive bool
	Archives      bool // Expand zip/rar/7z members into the list
	Sort          SortStrategy
}

// Scanner enumerates a directory and keeps entries with a recognized extension
type Scanner struct {
	opts     ScanOptions
	images   glob.Glob
	archives glob.Glob
}

// extensionPattern requires a non-empty stem, so ".png" alone is not an image
func extensionPattern(exts []string) string {
	return "?*.{" + strings.Join(exts, ",") + "}"
}

// NewScanner compiles the extension matchers for the given options
func NewScanner(opts ScanOptions) (*Scanner, error) {
	if opts.Sort == nil {
		opts.Sort = &NaturalSortStrategy{}
	}

	images, err := glob.Compile(extensionPattern(supportedExtensions))
	if err != nil {
		return nil, err
	}
	archives, err := glob.Compile(extensionPattern(archiveExtensions))
	if err != nil {
		return nil, err
	}

	return &Scanner{opts: opts, images: images, archives: archives}, nil
}

func (s *Scanner) normalize(name string) string {
	if s.opts.CaseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// IsImageName reports whether a base name carries a recognized image extension
func (s *Scanner) IsImageName(name string) bool {
	return s.images.Match(s.normalize(name))
}

// IsArchiveName reports whether a base name is an archive the scanner can expand
func (s *Scanner) IsArchiveName(name string) bool {
	return s.archives.Match(s.normalize(name))
}

// scanResult collects one item per image file or archive. An archive item
// carries the archive's own path and mtime and stands in for its members.
type scanResult struct {
	items   []ImagePath
	members map[string][]ImagePath
}

// expand sorts the items and replaces each archive item with its members,
// which keeps the members of one archive contiguous under every order
func (r *scanResult) expand(strategy SortStrategy) []ImagePath {
	entries := []ImagePath{}
	for _, item := range strategy.Sort(r.items) {
		if members, ok := r.members[item.Path]; ok {
			entries = append(entries, members...)
			continue
		}
		entries = append(entries, item)
	}
	return entries
}

// Scan lists the recognized images under root. A missing or unreadable root
// yields an empty list.
func (s *Scanner) Scan(root string) []ImagePath {
	result := &scanResult{members: make(map[string][]ImagePath)}
	var err error

	if s.opts.Recursive {
		err = s.walk(root, result)
	} else {
		err = s.readDir(root, result)
	}
	if err != nil {
		logger.Warn("Cannot scan directory", zap.String("dir", root), zap.Error(err))
		return []ImagePath{}
	}

	entries := result.expand(s.opts.Sort)
	logger.Debug("Scanned directory",
		zap.String("dir", root),
		zap.Int("images", len(entries)),
		zap.Int("archives", len(result.members)),
		zap.String("sort", s.opts.Sort.Name()))

	return entries
}

func (s *Scanner) readDir(root string, result *scanResult) error {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	for _, de := range dirEntries {
		s.addEntry(result, filepath.Join(root, de.Name()), de)
	}
	return nil
}

func (s *Scanner) walk(root string, result *scanResult) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			logger.Warn("Skipping unreadable path", zap.String("path", p), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		s.addEntry(result, p, d)
		return nil
	})
}

func (s *Scanner) addEntry(result *scanResult, p string, de fs.DirEntry) {
	info, ok := regularFileInfo(p, de)
	if !ok {
		return
	}

	name := de.Name()
	switch {
	case s.IsImageName(name):
		result.items = append(result.items, ImagePath{Path: p, ModTime: info.ModTime()})
	case s.opts.Archives && s.IsArchiveName(name):
		members, err := listArchive(p, s.IsImageName)
		if err != nil {
			logger.Warn("Skipping problematic archive", zap.String("archive", p), zap.Error(err))
			return
		}
		if len(members) == 0 {
			return
		}
		result.items = append(result.items, ImagePath{Path: p, ModTime: info.ModTime()})
		result.members[p] = s.opts.Sort.Sort(members)
	}
}

// regularFileInfo accepts regular files and symlinks that resolve to one
func regularFileInfo(p string, de fs.DirEntry) (fs.FileInfo, bool) {
	if de.Type().IsRegular() {
		info, err := de.Info()
		return info, err == nil
	}
	if de.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(p)
		if err == nil && info.Mode().IsRegular() {
			return info, true
		}
	}
	return nil, false
}
