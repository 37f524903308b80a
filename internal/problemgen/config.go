package problemgen

import "time"

// Config controls the behavior of the Generator.
type Config struct {
	// Registry resolves skill ids to generators.
	Registry *Registry

	// Validators is the ordered chain run on every generated item.
	// The first failure stops the chain.
	Validators []Validator

	// Observer receives every invalid report. Nil means NopObserver.
	Observer Observer

	// Now seeds unseeded requests. Nil means time.Now.
	Now func() time.Time
}

// DefaultConfig returns a Config with the built-in registry and the standard
// validator chain.
func DefaultConfig() Config {
	return Config{
		Registry:   DefaultRegistry(),
		Validators: DefaultValidators(),
		Observer:   NopObserver{},
		Now:        time.Now,
	}
}
