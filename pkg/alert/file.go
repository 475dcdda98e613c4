package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jobtrawl/jobtrawl/pkg/source"
)

// File appends matched jobs to a JSON file so matches survive between
// runs and can be grepped or fed to other tools.
type File struct {
	path string
}

// NewFile creates a file notifier writing to path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string { return "file" }

func (f *File) Send(_ context.Context, n *Notification) error {
	var all []source.Posting

	data, err := os.ReadFile(f.path)
	if err == nil {
		if err := json.Unmarshal(data, &all); err != nil {
			return fmt.Errorf("parse existing matches %s: %w", f.path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read matches file %s: %w", f.path, err)
	}

	all = append(all, n.Jobs...)

	out, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}
	if err := os.WriteFile(f.path, out, 0o644); err != nil {
		return fmt.Errorf("write matches file %s: %w", f.path, err)
	}
	return nil
}
