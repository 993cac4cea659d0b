// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"melt/internal/batch"
	"melt/internal/jsonlutil"
)

func init() { Register("jsonl", newJSONLSink) }

// jsonlSink streams each report as one JSON line (v1).
type jsonlSink struct {
	in   chan<- Report
	done <-chan error
}

func newJSONLSink(w io.Writer, _ Options) Sink {
	in, done := jsonlutil.Start[Report](w, 64,
		func(enc *json.Encoder, r Report) error {
			return enc.Encode(ToAPI(r))
		},
		IsBrokenPipe,
	)
	return &jsonlSink{in: in, done: done}
}

func (s *jsonlSink) Write(r Report) error {
	select {
	case err := <-s.done:
		// The encoder stopped early; keep the error for Close.
		ch := make(chan error, 1)
		ch <- err
		s.done = ch
		return err
	case s.in <- r:
		return nil
	}
}

func (s *jsonlSink) Close(*batch.Summary) error {
	close(s.in)
	return <-s.done
}
