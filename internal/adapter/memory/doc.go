// Package memory provides process-local repositories. All state is lost on
// restart; every method is safe for concurrent use.
package memory
