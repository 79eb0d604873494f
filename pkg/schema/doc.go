// Package schema describes the declarative form definition served for a roll
// number: an ordered list of sections, each holding ordered fields with a
// closed set of types. Decoding rejects unknown field types and structural
// mistakes up front so renderers and the wizard never see a malformed form.
package schema
