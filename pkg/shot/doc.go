// Package shot composes whole records into labelled text blocks ("shots")
// and decomposes free text back into records. Each field of a record is
// rendered under a header derived from its name; the decomposer locates
// field boundaries by searching for those headers at line starts, sorting
// the hits by position, and slicing the text between them. That makes it
// tolerant of generators that omit headers, reorder fields, or continue a
// query mid-section: a field whose header never shows up parses as absent,
// never as an error.
//
// The package also carries the Delimiter protocol used to join many blocks
// into one corpus and split the corpus back apart, and the Stream codec that
// ties the two together.
package shot
