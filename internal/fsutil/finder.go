// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with one of the specified extensions. It returns a slice of their full paths in
// lexical order.
func FindFilesByExtension(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("at least one extension is required")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasExtension(d.Name(), extensions) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// CollectFiles expands every path into the files it denotes: a regular file
// is taken as is, a directory is searched with FindFilesByExtension. Paths
// that do not exist are skipped. Duplicates are dropped, first occurrence wins.
func CollectFiles(paths []string, extensions ...string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			all = append(all, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := FindFilesByExtension(path, extensions...)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}

	return all, nil
}

func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
