package domain

import (
	"sort"
	"strings"
)

// EvidenceIndex maps an evidence folder name to the file names found in it.
// Pattern matching ignores case however the index was built.
type EvidenceIndex map[string][]string

// Add records a file under a folder.
func (e EvidenceIndex) Add(folder, file string) {
	folder = strings.ToLower(folder)
	e[folder] = append(e[folder], strings.ToLower(file))
}

// Files returns every indexed file name, sorted by folder then name.
func (e EvidenceIndex) Files() []string {
	folders := make([]string, 0, len(e))
	for f := range e {
		folders = append(folders, f)
	}
	sort.Strings(folders)

	var out []string
	for _, f := range folders {
		names := append([]string(nil), e[f]...)
		sort.Strings(names)
		out = append(out, names...)
	}
	return out
}

// Matching returns the files containing any of the given substrings, ignoring case.
func (e EvidenceIndex) Matching(patterns ...string) []string {
	var out []string
	for _, name := range e.Files() {
		lower := strings.ToLower(name)
		for _, p := range patterns {
			if strings.Contains(lower, strings.ToLower(p)) {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// Len returns the total number of indexed files.
func (e EvidenceIndex) Len() int {
	n := 0
	for _, files := range e {
		n += len(files)
	}
	return n
}
