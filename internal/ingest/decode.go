package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	domdoc "github.com/kailas-cloud/djinnsearch/internal/domain/document"
)

// maxLineSize bounds a single JSON-lines record.
const maxLineSize = 4 << 20

// Failure is a record that could not be decoded or validated.
type Failure struct {
	Source string
	// Line is the 1-based line (JSON lines) or element (JSON array) number.
	Line int
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s:%d: %v", f.Source, f.Line, f.Err)
}

// Unwrap returns the cause.
func (f Failure) Unwrap() error { return f.Err }

// Batch is the outcome of decoding one or more sources.
type Batch struct {
	Docs     []domdoc.Document
	Failures []Failure
}

// Decode reads records from r. Input starting with "[" is a JSON array,
// anything else is JSON lines. Invalid records become failures; a malformed
// stream is an error.
func Decode(r io.Reader, source string) (Batch, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return Batch{}, nil
	}
	if err != nil {
		return Batch{}, fmt.Errorf("read %s: %w", source, err)
	}
	if first == '[' {
		return decodeArray(br, source)
	}
	return decodeLines(br, source)
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}

func decodeArray(r io.Reader, source string) (Batch, error) {
	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil {
		return Batch{}, fmt.Errorf("%s: %w", source, err)
	}

	var b Batch
	for n := 1; dec.More(); n++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return b, fmt.Errorf("%s: element %d: %w", source, n, err)
		}
		b.add(raw, source, n)
	}
	if _, err := dec.Token(); err != nil {
		return b, fmt.Errorf("%s: %w", source, err)
	}
	return b, nil
}

func decodeLines(r io.Reader, source string) (Batch, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var b Batch
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		b.add(line, source, n)
	}
	if err := sc.Err(); err != nil {
		return b, fmt.Errorf("%s: %w", source, err)
	}
	return b, nil
}

func (b *Batch) add(raw []byte, source string, n int) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		b.Failures = append(b.Failures, Failure{Source: source, Line: n, Err: err})
		return
	}
	doc, err := rec.Document()
	if err != nil {
		b.Failures = append(b.Failures, Failure{Source: source, Line: n, Err: err})
		return
	}
	b.Docs = append(b.Docs, doc)
}

// DecodeFiles decodes paths concurrently on a worker pool of poolSize
// (NumCPU when <= 0). Documents keep file order. The first stream error
// aborts the result.
func DecodeFiles(ctx context.Context, paths []string, poolSize int) (Batch, error) {
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return Batch{}, fmt.Errorf("create pool: %w", err)
	}
	defer pool.Release()

	batches := make([]Batch, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			batches[i], errs[i] = decodeFile(path)
		})
		if err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit %s: %w", path, err)
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return Batch{}, err
	}

	var out Batch
	for _, b := range batches {
		out.Docs = append(out.Docs, b.Docs...)
		out.Failures = append(out.Failures, b.Failures...)
	}
	return out, nil
}

func decodeFile(path string) (Batch, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Batch{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, path)
}
