// Package highlight provides support to highlight source code blocks.
// It uses the Chroma library to do this work.
//
// Source code blocks are represented as [Code] values,
// which are comprised of multiple [Span]s.
// Spans represent special rendering instructions,
// such as a line of code that should be emphasized,
// or a failure that should be visible in the output.
package highlight
