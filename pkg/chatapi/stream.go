package chatapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
)

// StreamReader consumes the line-delimited JSON envelopes of a streaming
// send-message response, accumulating message deltas in arrival order into
// one growing text buffer.
type StreamReader struct {
	r    *bufio.Reader
	body io.Closer
	buf  strings.Builder
}

// NewStreamReader wraps a streaming response body.
func NewStreamReader(rc io.ReadCloser) *StreamReader {
	return &StreamReader{r: bufio.NewReader(rc), body: rc}
}

// Next returns the next envelope, or io.EOF when the stream ends. Blank
// and malformed lines are skipped.
func (s *StreamReader) Next() (*models.StreamEnvelope, error) {
	for {
		line, err := s.r.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var env models.StreamEnvelope
			if jerr := json.Unmarshal(line, &env); jerr == nil {
				s.buf.WriteString(env.Message)
				return &env, nil
			}
		}
		if err != nil {
			return nil, err
		}
	}
}

// Process drains the stream, invoking fn for each envelope, and returns
// the accumulated text. It stops early when the context is cancelled.
func (s *StreamReader) Process(ctx context.Context, fn func(models.StreamEnvelope)) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.Text(), err
		}
		env, err := s.Next()
		if err != nil {
			if err == io.EOF {
				return s.Text(), nil
			}
			return s.Text(), err
		}
		if fn != nil {
			fn(*env)
		}
	}
}

// Text returns the message text accumulated so far.
func (s *StreamReader) Text() string {
	return s.buf.String()
}

// Close closes the underlying response body.
func (s *StreamReader) Close() error {
	return s.body.Close()
}
