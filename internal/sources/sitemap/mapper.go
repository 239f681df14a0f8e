package sitemap

import (
	"fmt"
	"strings"

	"github.com/pinnote/pinnote/internal/domain"
)

// Mapper converts manifest entries to domain.Page values.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// MapPages converts a parsed manifest to []domain.Page. Entries without a
// path are skipped; paths are normalized and duplicates keep the first
// occurrence.
func (m *Mapper) MapPages(config Config) ([]domain.Page, error) {
	pages := make([]domain.Page, 0, len(config.Pages))
	seen := make(map[string]bool, len(config.Pages))

	for _, entry := range config.Pages {
		path := normalizePath(entry.Path)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		pages = append(pages, domain.Page{
			Path:  path,
			Title: strings.TrimSpace(entry.Title),
		})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no valid pages found in sitemap")
	}

	return pages, nil
}

// normalizePath forces a leading slash and strips the trailing one,
// keeping "/" itself intact. Returns "" for blank input.
func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
