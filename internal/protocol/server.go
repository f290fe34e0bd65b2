package protocol

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"bossgym/internal/logging"
)

// maxLine bounds one request line.
const maxLine = 1 << 20

var ErrLineTooLong = errors.New("request line too long")

// Server runs the handler over a line-delimited stream, strictly one response
// per request. Nothing but responses is ever written to out.
type Server struct {
	h   *Handler
	in  io.Reader
	out *bufio.Writer
}

func NewServer(h *Handler, in io.Reader, out io.Writer) *Server {
	return &Server{h: h, in: in, out: bufio.NewWriter(out)}
}

// Serve returns nil after a close request or end of input. An oversized
// request is answered with an error and skipped.
func (s *Server) Serve(ctx context.Context) error {
	r := bufio.NewReaderSize(s.in, 64*1024)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := readLine(r, maxLine)
		if errors.Is(err, ErrLineTooLong) {
			logging.Error("request dropped", err, logging.Fields{"limit": maxLine})
			if werr := s.write(errorResponse(err)); werr != nil {
				return fmt.Errorf("write response: %w", werr)
			}
			continue
		}
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return fmt.Errorf("read request: %w", err)
		}
		if line = bytes.TrimSpace(line); len(line) > 0 {
			resp, done := s.h.Handle(line)
			if err := s.write(resp); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
			if done {
				logging.Info("close requested", nil)
				return nil
			}
		}
		if eof {
			logging.Info("input closed", nil)
			return nil
		}
	}
}

// readLine returns the next line including its newline. A line over limit is
// consumed to its end and reported as ErrLineTooLong.
func readLine(r *bufio.Reader, limit int) ([]byte, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := r.ReadSlice('\n')
		n := len(line) + len(bytes.TrimSuffix(chunk, []byte{'\n'}))
		if !tooLong && n > limit {
			tooLong, line = true, nil
		}
		if !tooLong {
			line = append(line, chunk...)
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err != nil && !errors.Is(err, io.EOF):
			return nil, err
		case tooLong:
			return nil, ErrLineTooLong
		}
		return line, err
	}
}

// write emits one response as a single line and flushes it.
func (s *Server) write(resp Response) error {
	b, err := json.Marshal(resp)
	if err != nil {
		b, _ = json.Marshal(errorResponse(fmt.Errorf("encode response: %w", err)))
	}
	b = append(b, '\n')
	if _, err := s.out.Write(b); err != nil {
		return err
	}
	return s.out.Flush()
}
