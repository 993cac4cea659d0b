// core/fasta/stream.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one FASTA entry. Seq has whitespace removed but is otherwise
// as read; callers validate it.
type Record struct {
	ID   string
	Desc string
	Seq  string
}

// ForEachRecord parses FASTA from r and calls emit once per record, in file
// order. Sequence lines before the first header form a record with an empty
// ID, so bare one-sequence-per-file input works too.
//
// It is cancelable: returns promptly when ctx is Done, even mid-record.
func ForEachRecord(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		cur    Record
		seen   bool
		seq    = make([]byte, 0, 4096)
		lineNo int
	)
	flush := func() error {
		if !seen && len(seq) == 0 {
			return nil
		}
		cur.Seq = string(seq)
		if err := emit(cur); err != nil {
			return err
		}
		seq = seq[:0]
		cur = Record{}
		return nil
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			cur.ID, cur.Desc = parseHeader(line[1:])
			seen = true
			continue
		}
		for _, b := range line {
			if b != ' ' && b != '\t' {
				seq = append(seq, b)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan (line %d): %w", lineNo, err)
	}
	return flush()
}

// ForEachRecordPath opens path with Open and streams its records.
func ForEachRecordPath(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return ForEachRecord(ctx, rc, emit)
}

func parseHeader(hdr []byte) (id, desc string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
