// Package codeblock models a code block on a page:
// its inputs, the display variant chosen for it,
// and the state owned by a single rendered instance.
//
// A code block is displayed in one of three variants:
//
//   - [Static]: highlighted source with a copy button,
//     optionally followed by an evaluated preview
//   - [Live]: an editable surface whose contents are evaluated
//     on every edit, with a preview and an error region
//   - [Collapsible]: either of the above,
//     hidden behind a disclosure label
//
// The variant is chosen once per render by [Select].
package codeblock
