package entity

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/goliatone/go-formwizard/pkg/model"
)

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

// EmbeddedFS returns the bundled entity definitions. Callers may pass this
// filesystem to LoadFS to use the default configuration.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

var (
	builtinOnce  sync.Once
	builtinStore *Store
)

// Builtin returns the store holding the embedded definitions. The embedded
// documents are part of the build, so a parse failure panics.
func Builtin() *Store {
	builtinOnce.Do(func() {
		store, err := LoadFS(EmbeddedFS())
		if err != nil {
			panic(err)
		}
		builtinStore = store
	})
	return builtinStore
}

// Student returns the bundled student layout.
func Student() model.Schema {
	return mustLookup(EntityStudent)
}

// Teacher returns the bundled teacher layout.
func Teacher() model.Schema {
	return mustLookup(EntityTeacher)
}

func mustLookup(name string) model.Schema {
	sc, ok := Builtin().Lookup(name)
	if !ok {
		panic("entity: builtin definition " + name + " missing")
	}
	return sc
}
