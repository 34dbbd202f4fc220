// Package render keeps the named catalog of frontends ("screen", "prompt")
// the admin binary can run.
package render
