package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tkingovr/pfilter/api"
)

// maxLineSize bounds a single JSON line.
const maxLineSize = 1 << 20

// Parse decodes one JSON object into a Particle.
func Parse(data []byte) (*api.Particle, error) {
	var p api.Particle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid particle record: %w", err)
	}
	return &p, nil
}

// ReadAll decodes a JSON Lines stream of particles. Blank lines are skipped.
func ReadAll(r io.Reader) ([]api.Particle, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	var out []api.Particle
	line := 0
	for sc.Scan() {
		line++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}
		p, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, *p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading particles: %w", err)
	}
	return out, nil
}

// Writer writes particles as JSON Lines.
type Writer struct {
	w   *bufio.Writer
	enc *json.Encoder
	n   int
}

func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriter(w)
	return &Writer{w: bw, enc: json.NewEncoder(bw)}
}

// Write appends one particle.
func (w *Writer) Write(p *api.Particle) error {
	if err := w.enc.Encode(p); err != nil {
		return fmt.Errorf("encoding particle: %w", err)
	}
	w.n++
	return nil
}

// Count returns the number of particles written so far.
func (w *Writer) Count() int { return w.n }

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
