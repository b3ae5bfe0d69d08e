// Package logs reads popcorn's log file for `popcorn logs`.
//
// Last returns the final lines of the file together with the byte offset
// where reading stopped; Follow polls from an offset and hands each new line
// to a callback until the context ends. Filter narrows console-format lines
// by level and component.
package logs
