// Package strata flattens template inheritance chains.
//
// A [Template] is a parsed template tree that may extend a parent template
// and override named blocks in it. [Resolve] walks the chain from the child
// to its ultimate ancestor, merges block overrides along the way, and
// returns a single tree with no remaining extends references or block
// placeholders, ready for whatever rendering stage the caller uses.
//
// The package never touches the file system and never parses template
// source: templates reach it already parsed, through a [Loader]. The
// [Engine] wraps a loader with optional memoization and advisory logging.
//
// Example usage:
//
//	loader := strata.MapLoader{
//	    "layout": layout,
//	    "index":  index, // extends "layout"
//	}
//
//	engine, err := strata.New(loader, strata.WithCache())
//	if err != nil {
//	    // handle error
//	}
//
//	page, err := engine.Resolve("index")
//	if err != nil {
//	    // handle error
//	}
//	// hand page off to a renderer
package strata
