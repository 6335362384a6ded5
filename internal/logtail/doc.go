// Package logtail loads log text into the input buffer.
//
// Errors usually sit at the end of a log, so Read and ReadFrom keep the last N
// lines using a fixed-size ring buffer; memory stays bounded by N no matter how
// large the file is. A non-positive N keeps every line.
//
// ReadSource backs the --file flag and the analyze command: it accepts a path or
// "-" for standard input and returns the kept lines joined with "\n". The request
// dispatcher still applies its own 50-line cap to whatever ends up in the buffer.
//
// Lines longer than 1 MiB fail the scan with a "read log" error.
package logtail
