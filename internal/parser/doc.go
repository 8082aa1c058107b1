// Package parser extracts document outlines from Markdown and MDX sources
// with gomarkdown, and holds the byte-level helpers used to normalize inputs
// before conversion.
package parser
