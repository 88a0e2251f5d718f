package cards

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"text/template"
)

// Store is a file-backed card template store. Templates are adaptive card
// JSON documents with optional Go template placeholders; they are parsed on
// first use and cached for the life of the process.
type Store struct {
	dir string

	mu        sync.RWMutex
	templates map[string]*template.Template
}

func NewStore(dir string) *Store {
	return &Store{
		dir:       dir,
		templates: make(map[string]*template.Template),
	}
}

// Load returns the raw template document without rendering it.
func (s *Store) Load(name string) (json.RawMessage, error) {
	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("load card %s: %w", name, err)
	}
	return raw, nil
}

// Render fills the named template with data. The output must be valid JSON;
// a template whose placeholders break the document is a server-side error,
// never something to hand to the client.
func (s *Store) Render(name string, data any) (json.RawMessage, error) {
	tmpl, err := s.template(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render card %s: %w", name, err)
	}
	if !json.Valid(buf.Bytes()) {
		return nil, fmt.Errorf("render card %s: output is not valid JSON", name)
	}
	return buf.Bytes(), nil
}

func (s *Store) template(name string) (*template.Template, error) {
	s.mu.RLock()
	tmpl, ok := s.templates[name]
	s.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("load card %s: %w", name, err)
	}

	tmpl, err = template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap{"json": jsonEscape}).
		Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse card %s: %w", name, err)
	}

	s.mu.Lock()
	s.templates[name] = tmpl
	s.mu.Unlock()
	return tmpl, nil
}

// path resolves a template name inside the store directory. Base strips any
// path elements so a name can never escape the directory.
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// jsonEscape makes a value safe to interpolate inside a JSON string literal.
// Templates apply it to every user-supplied placeholder.
func jsonEscape(v any) (string, error) {
	b, err := json.Marshal(fmt.Sprint(v))
	if err != nil {
		return "", err
	}
	return string(b[1 : len(b)-1]), nil
}
