package document

import "github.com/bethropolis/richdoc/internal/style"

// StyleResolver turns a direct style string and a list of style names into
// an attribute set. The document never interprets style syntax itself.
type StyleResolver interface {
	Resolve(direct string, names []string) (*style.Attrs, error)
}

// ResolverFunc adapts a function to StyleResolver.
type ResolverFunc func(direct string, names []string) (*style.Attrs, error)

func (f ResolverFunc) Resolve(direct string, names []string) (*style.Attrs, error) {
	return f(direct, names)
}
