// internal/client/frame_test.go
package client

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestFrameReader_SplitsAtDelimiter(t *testing.T) {
	fr := newFrameReader(strings.NewReader("{\"a\":1}\n{\"b\":2}\n"))

	first, err := fr.next()
	if err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if got := string(first); got != "{\"a\":1}\n" {
		t.Fatalf("first frame: got=%q", got)
	}

	second, err := fr.next()
	if err != nil {
		t.Fatalf("second frame: %v", err)
	}
	if got := string(second); got != "{\"b\":2}\n" {
		t.Fatalf("second frame: got=%q", got)
	}

	if _, err := fr.next(); !errors.Is(err, io.EOF) {
		t.Fatalf("after last frame: got=%v want=EOF", err)
	}
}

func TestFrameReader_ReassemblesSplitWrites(t *testing.T) {
	pr, pw := io.Pipe()
	fr := newFrameReader(pr)

	go func() {
		for _, chunk := range []string{"{\"conn", "ected\":tr", "ue}\n"} {
			pw.Write([]byte(chunk))
			time.Sleep(time.Millisecond)
		}
		pw.Close()
	}()

	frame, err := fr.next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if got := string(frame); got != "{\"connected\":true}\n" {
		t.Fatalf("reassembled frame: got=%q", got)
	}
}

func TestFrameReader_DropsPartialFrameAtEOF(t *testing.T) {
	fr := newFrameReader(strings.NewReader("{\"a\":1}\n{\"cut"))

	if _, err := fr.next(); err != nil {
		t.Fatalf("complete frame: %v", err)
	}

	frame, err := fr.next()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("partial frame: got err=%v want=EOF", err)
	}
	if frame != nil {
		t.Fatalf("partial frame leaked: %q", frame)
	}
}
