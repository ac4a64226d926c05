// Package logtail reads the end of the regexfav log file and decodes its
// JSON lines for display.
//
// Read keeps a ring buffer of maxLines entries so memory stays bounded no
// matter how large the file has grown. A missing file is not an error; the
// log file is optional.
//
// Parse understands the fields the zerolog logger writes (time, level, cmp,
// message, error). Anything else is kept in Fields and printed sorted by key
// by Format. Lines that are not JSON pass through untouched.
package logtail
