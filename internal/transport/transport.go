// Package transport implements Content-Length-framed message I/O for the
// DAP wire protocol (spec §6): each message is preceded by a
// `Content-Length: N\r\n\r\n` header, where N is the byte length of a
// UTF-8-encoded JSON body. TCP accept loops and stdio plumbing live in
// cmd/wayfinder, keeping this package message-in/message-out only, the
// same separation bassosimone-nop draws between its stream transport
// (dnsoverstream) and the net.Conn it wraps.
package transport

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

const contentLengthHeader = "Content-Length: "

// ReadMessage reads one Content-Length-framed message body from r.
func ReadMessage(r *bufio.Reader) ([]byte, error) {
	length, err := readContentLength(r)
	if err != nil {
		return nil, err
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, &wferr.TransportError{Op: "read body", Cause: err}
	}
	return body, nil
}

func readContentLength(r *bufio.Reader) (int, error) {
	var length int
	sawContentLength := false
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, &wferr.TransportError{Op: "read header", Cause: err}
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break // blank line terminates the header block
		}
		if strings.HasPrefix(line, contentLengthHeader) {
			n, err := strconv.Atoi(strings.TrimSpace(line[len(contentLengthHeader):]))
			if err != nil {
				return 0, &wferr.TransportError{Op: "parse Content-Length", Cause: err}
			}
			length = n
			sawContentLength = true
		}
		// Other headers (e.g. Content-Type) are accepted and ignored.
	}
	if !sawContentLength {
		return 0, &wferr.TransportError{Op: "read header", Cause: errMissingContentLength}
	}
	return length, nil
}

// WriteMessage writes body to w framed with a Content-Length header.
func WriteMessage(w io.Writer, body []byte) error {
	header := fmt.Sprintf("%s%d\r\n\r\n", contentLengthHeader, len(body))
	if _, err := io.WriteString(w, header); err != nil {
		return &wferr.TransportError{Op: "write header", Cause: err}
	}
	if _, err := w.Write(body); err != nil {
		return &wferr.TransportError{Op: "write body", Cause: err}
	}
	return nil
}

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

var errMissingContentLength = sentinelError("missing Content-Length header")
