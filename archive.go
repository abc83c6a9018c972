package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

// archiveMemberName reduces an entry name to its base name for extension matching
func archiveMemberName(entry string) string {
	return path.Base(strings.ReplaceAll(entry, "\\", "/"))
}

func archiveKind(archivePath string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(archivePath)), ".")
}

// listArchive returns the members of a zip, rar or 7z archive accepted by match
func listArchive(archivePath string, match func(name string) bool) ([]ImagePath, error) {
	switch archiveKind(archivePath) {
	case "zip":
		return listZip(archivePath, match)
	case "rar":
		return listRar(archivePath, match)
	case "7z":
		return list7z(archivePath, match)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", filepath.Ext(archivePath))
	}
}

func archiveMember(archivePath, entry string) ImagePath {
	return ImagePath{
		Path:        archivePath + ":" + entry,
		ArchivePath: archivePath,
		EntryPath:   entry,
	}
}

func listZip(archivePath string, match func(string) bool) ([]ImagePath, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !match(archiveMemberName(f.Name)) {
			continue
		}
		member := archiveMember(archivePath, f.Name)
		member.ModTime = f.Modified
		images = append(images, member)
	}
	return images, nil
}

func listRar(archivePath string, match func(string) bool) ([]ImagePath, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var images []ImagePath
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.IsDir || !match(archiveMemberName(header.Name)) {
			continue
		}
		member := archiveMember(archivePath, header.Name)
		member.ModTime = header.ModificationTime
		images = append(images, member)
	}
	return images, nil
}

func list7z(archivePath string, match func(string) bool) ([]ImagePath, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		info := f.FileInfo()
		if info.IsDir() || !match(archiveMemberName(f.Name)) {
			continue
		}
		member := archiveMember(archivePath, f.Name)
		member.ModTime = info.ModTime()
		images = append(images, member)
	}
	return images, nil
}

// readArchiveEntry returns the raw bytes of one archive member
func readArchiveEntry(archivePath, entryPath string) ([]byte, error) {
	switch archiveKind(archivePath) {
	case "zip":
		return readZipEntry(archivePath, entryPath)
	case "rar":
		return readRarEntry(archivePath, entryPath)
	case "7z":
		return read7zEntry(archivePath, entryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", filepath.Ext(archivePath))
	}
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s: %w", entryPath, archivePath, os.ErrNotExist)
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s: %w", entryPath, archivePath, os.ErrNotExist)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s: %w", entryPath, archivePath, os.ErrNotExist)
}
