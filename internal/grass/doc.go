// Package grass defines the location model, the per-capability error taxonomies and the
// capability interfaces (alias, path, discovery, git) shared by every grass strategy.
//
// Concrete strategies live in the alias, path, discovery and git subpackages; the api subpackage
// composes them and the changes subpackage aggregates working tree status across repositories.
package grass
