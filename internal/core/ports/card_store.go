package ports

import "encoding/json"

// CardStore loads and renders named adaptive card templates. The core only
// ever asks for templates by name; it never embeds card content.
type CardStore interface {
	// Load returns the raw template document.
	Load(name string) (json.RawMessage, error)

	// Render fills the named template with data. A nil data renders the
	// template as-is.
	Render(name string, data any) (json.RawMessage, error)
}
