package server

import "io"

// readAll drains a request body.
func readAll(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}
