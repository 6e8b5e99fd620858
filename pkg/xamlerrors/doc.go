// Package xamlerrors provides error definitions shared by the xamlscale
// packages.
//
// Errors are sentinels meant to be wrapped with context (usually the path
// being processed) and matched with [errors.Is].
package xamlerrors
