// Package site renders the static website: the map page, the company
// index, one page per company and the dashboard, plus the CSS and
// JavaScript they load.
//
// Rendering (Generator.Generate) and writing (WriteFiles) are separate so
// that output can be inspected without touching the filesystem. Element IDs
// come from an IDs generator passed to NewGenerator; a fixed seed gives
// byte-identical output from run to run.
package site
