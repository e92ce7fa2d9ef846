package run

import (
	"bufio"
	"bytes"
	"io"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-client/defs"
	"github.com/relex/slog-client/transport"
)

const ingressReadBufferSize = 64 * 1024

// pumpLines feeds encoded lines from the reader into the transport until EOF
//
// A line over defs.InputLineMaxBytes is skipped up to its newline and counted as one dropped
// record; following lines are unaffected. Only a reader-level error aborts the ingress.
func pumpLines(reader io.Reader, trans *transport.Transport) {
	buffered := bufio.NewReaderSize(reader, ingressReadBufferSize)
	line := make([]byte, 0, 4096)
	discarding := false

	for {
		chunk, err := buffered.ReadSlice('\n')
		if !discarding {
			if len(line)+len(chunk) > defs.InputLineMaxBytes {
				discarding = true
				line = line[:0]
			} else {
				line = append(line, chunk...)
			}
		}

		switch err {
		case bufio.ErrBufferFull:
			// line continues beyond the read buffer
		case nil:
			if discarding {
				trans.DropMalformed(1)
				discarding = false
			} else {
				emitLine(trans, line)
			}
			line = line[:0]
		case io.EOF:
			if discarding {
				trans.DropMalformed(1)
			} else {
				emitLine(trans, line)
			}
			return
		default:
			logger.Errorf("ingress aborted: %s", err.Error())
			if discarding || len(line) > 0 {
				trans.DropMalformed(1)
			}
			return
		}
	}
}

func emitLine(trans *transport.Transport, line []byte) {
	line = bytes.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return
	}
	trans.AppendLine(line)
}
