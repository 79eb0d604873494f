// Package uischema loads UI overlays that rewrite the copy of a fetched form:
// titles, section headings, field labels, placeholders and option labels.
// Overlays never touch ids, types or validation rules, so a decorated form
// validates exactly like the one the API served.
package uischema
