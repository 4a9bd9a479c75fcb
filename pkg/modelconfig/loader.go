package modelconfig

import (
	"golang.org/x/sync/singleflight"
)

// Loader parses model documents, collapsing concurrent parses of the same
// path into one. The control actor and the engine both read the document
// when a model is loaded.
//
// Returned configs are shared between callers and must not be modified.
type Loader struct {
	group singleflight.Group
	parse func(path string) (*Config, error)
}

// NewLoader creates a loader reading from the file system
func NewLoader() *Loader {
	return &Loader{parse: ParseFile}
}

// Load parses the document at path
func (l *Loader) Load(path string) (*Config, error) {
	v, err, _ := l.group.Do(path, func() (any, error) {
		return l.parse(path)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Config), nil
}

// DefaultLoader is shared by the parameter schema and the engine
var DefaultLoader = NewLoader()
