// ABOUTME: YAML frontmatter rendering/parsing and atomic file writes for markdown storage.
// ABOUTME: Bodies are preserved byte-for-byte so entry text round-trips verbatim.
package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---\n"

// timeLayout is the on-disk timestamp format (ISO-8601 with nanoseconds).
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// renderFrontmatter encodes fm as YAML between --- delimiters, followed by body unchanged.
func renderFrontmatter(fm any, body string) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return frontmatterDelim + buf.String() + frontmatterDelim + body, nil
}

// parseFrontmatter splits content into its YAML header and the body that follows
// the closing delimiter. Returns an empty header when none is present.
func parseFrontmatter(content string) (header string, body string) {
	if !strings.HasPrefix(content, frontmatterDelim) {
		return "", content
	}
	rest := content[len(frontmatterDelim):]
	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end == -1 {
		return "", content
	}
	header = rest[:end+1]
	body = rest[end+1+len(frontmatterDelim):]
	return header, body
}

// atomicWrite writes data to a temp file in the target directory and renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
