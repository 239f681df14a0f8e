package sitemap

// Config represents the top-level structure of the sitemap manifest.
type Config struct {
	Pages []PageEntry `yaml:"pages"`
}

// PageEntry is one declared dashboard route.
type PageEntry struct {
	Path  string `yaml:"path"`
	Title string `yaml:"title,omitempty"`
}
