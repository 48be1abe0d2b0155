// Package markdown renders wiki pages. Source text goes through goldmark and
// the resulting HTML gets [[Name]] tokens expanded into root-relative links.
// Front matter blocks are split off before conversion.
package markdown
