package binding

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
)

// DefaultView is the name of the embedded view document.
const DefaultView = "main.html"

//go:embed views/main.html
var views embed.FS

// viewFuncs are placeholders so views parse before a request supplies the
// real, locale-aware implementations.
var viewFuncs = template.FuncMap{
	"t": func(key string, _ ...any) string { return key },
}

// Load parses the view document at path. An empty path selects the
// embedded default view.
func (e *Engine) Load(path string) error {
	var (
		src  []byte
		err  error
		name = path
	)
	if path == "" {
		name = DefaultView
		src, err = fs.ReadFile(views, "views/"+DefaultView)
	} else {
		src, err = os.ReadFile(path)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrViewNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("read view %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(viewFuncs).Parse(string(src))
	if err != nil {
		return fmt.Errorf("parse view %s: %w", name, err)
	}

	e.mu.Lock()
	e.view = tmpl
	e.name = name
	e.mu.Unlock()
	return nil
}

// ViewName returns the name of the loaded view document.
func (e *Engine) ViewName() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.name
}

// RenderView executes the loaded view with data, overriding template
// functions with funcs.
func (e *Engine) RenderView(w io.Writer, data any, funcs template.FuncMap) error {
	e.mu.RLock()
	base := e.view
	e.mu.RUnlock()

	tmpl, err := base.Clone()
	if err != nil {
		return err
	}
	if funcs != nil {
		tmpl.Funcs(funcs)
	}
	return tmpl.Execute(w, data)
}
