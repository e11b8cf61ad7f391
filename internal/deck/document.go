package deck

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/unicode/norm"
)

const frontMatterDelimiter = "---"

var metaKeyPattern = regexp.MustCompile(`^(title|file_key|filename)\s*:`)

// Meta is the optional YAML front matter of a deck.
type Meta struct {
	Title    string `yaml:"title" json:"title,omitempty"`
	FileKey  string `yaml:"file_key" json:"file_key,omitempty"`
	Filename string `yaml:"filename" json:"filename,omitempty"`
}

// Document is a deck source split into metadata and Markdown body.
type Document struct {
	Meta Meta
	Body string
}

// ParseDocument extracts front matter from source and returns the
// NFC-normalised body. Sources without front matter are returned unchanged.
func ParseDocument(source string) (Document, error) {
	if !hasFrontMatter(source) {
		return Document{Body: norm.NFC.String(source)}, nil
	}

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader([]byte(source)), &meta)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}

	meta.Title = strings.TrimSpace(norm.NFC.String(meta.Title))
	meta.FileKey = strings.TrimSpace(meta.FileKey)
	meta.Filename = strings.TrimSpace(meta.Filename)

	return Document{
		Meta: meta,
		Body: norm.NFC.String(string(body)),
	}, nil
}

// hasFrontMatter reports whether source opens with a YAML block that
// carries at least one Meta key. A bare "---" line is otherwise an ordinary
// deck line, and layout override lines never match.
func hasFrontMatter(source string) bool {
	lines := strings.Split(source, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != frontMatterDelimiter {
		return false
	}
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == frontMatterDelimiter {
			return false
		}
		if metaKeyPattern.MatchString(trimmed) {
			return closesBlock(lines[1:])
		}
	}
	return false
}

func closesBlock(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) == frontMatterDelimiter {
			return true
		}
	}
	return false
}
