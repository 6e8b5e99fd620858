// Package prompt asks the operator to confirm an action.
//
// [Confirm] reads a single line and works with any reader, such as a pipe.
// [ConfirmTTY] renders the same question as an interactive prompt and should
// only be used when [IsTerminal] reports both ends are terminals.
package prompt
