package profile

import (
	"fmt"
	"os"
)

// ParseResume reads a plain-text resume and extracts the candidate
// profile. PDF and DOCX extraction are not supported; convert to text
// first.
func ParseResume(path string) (*Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume %s: %w", path, err)
	}
	return Extract(string(data)), nil
}
