// Package wasm implements the values a fixture module imports from its
// host.
//
// When the fixtures are compiled to WebAssembly these come from the
// embedder's import object. When run as straight Go code, a Globals
// implementation supplies them instead.
package wasm
