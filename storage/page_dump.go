package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PageDump saves rendered pages as HTML files that the check command can
// verify again offline.
type PageDump struct {
	dir string
}

func NewPageDump(dir string) *PageDump {
	return &PageDump{dir: dir}
}

// Write stores html under name and returns the file path.
func (d *PageDump) Write(name, html string) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("could not create dump dir: %w", err)
	}

	path := filepath.Join(d.dir, unsafeName.ReplaceAllString(name, "_")+".html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("could not write page: %w", err)
	}
	return path, nil
}
