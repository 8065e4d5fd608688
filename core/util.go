package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanStrings cleans every item of `ss`, dropping empty and duplicated ones.
func CleanStrings(ss []string, lower ...bool) []string {
	if ss == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(ss))
	cleaned := make([]string, 0, len(ss))
	for _, s := range ss {
		s = CleanString(s, lower...)
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		cleaned = append(cleaned, s)
	}
	return cleaned
}

// Getwd tries to find the project root (the directory holding go.mod).
// go-test changes the working directory to the test package being run during tests,
// so the config directory can't be resolved relatively.
// Falls back to the current working directory when no go.mod is found (i.e. deployed binaries).
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
