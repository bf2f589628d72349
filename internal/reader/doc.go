// Package reader presents a span of a datalog.Log as a flat,
// seekable byte stream, the shape an off-device archiver or an
// net/http handler expects, on top of the log's (sequence, offset)
// addressing.
package reader
