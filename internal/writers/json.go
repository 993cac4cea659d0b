// internal/writers/json.go
package writers

import (
	"io"

	"melt/internal/batch"
	"melt/internal/jsonutil"
	"melt/pkg/api"
)

func init() { Register("json", newJSONSink) }

// jsonSink buffers reports and writes one document on Close: a single
// object outside batch mode, otherwise {"results": [...], "summary": {...}}.
type jsonSink struct {
	w    io.Writer
	opts Options
	out  []api.ResultV1
}

func newJSONSink(w io.Writer, o Options) Sink { return &jsonSink{w: w, opts: o} }

func (s *jsonSink) Write(r Report) error {
	s.out = append(s.out, ToAPI(r))
	return nil
}

func (s *jsonSink) Close(sum *batch.Summary) error {
	if !s.opts.Batch && len(s.out) == 1 {
		return jsonutil.EncodePretty(s.w, s.out[0])
	}
	doc := api.BatchV1{Results: s.out}
	if doc.Results == nil {
		doc.Results = []api.ResultV1{}
	}
	if sum != nil {
		doc.Summary = ToAPISummary(*sum)
	}
	return jsonutil.EncodePretty(s.w, doc)
}

// ToAPISummary converts batch statistics to the v1 wire schema.
func ToAPISummary(s batch.Summary) api.SummaryV1 {
	return api.SummaryV1{
		Count:       s.Count,
		Failed:      s.Failed,
		Approximate: s.Approximate,
		MeanTmC:     s.MeanTm,
		StdDevTmC:   s.StdDevTm,
		MinTmC:      s.MinTm,
		MaxTmC:      s.MaxTm,
	}
}
