// Package walk applies a [xaml.Rescaler] in place to every matching file in a
// directory tree.
//
// Failures are local: a file that cannot be rescaled or a directory that
// cannot be read is recorded in the [Result] and reported as an event, and the
// walk carries on with the rest of the tree.
package walk
