// Package shell is the interactive terminal surface: menu rendering, user
// prompts and the navigation state machine that sequences deck selection,
// card viewing and the enhancement workflows.
package shell
