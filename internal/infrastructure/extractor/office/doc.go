package office

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"
)

// extractLegacyDoc scrapes readable text from the WordDocument stream of a
// binary .doc compound file. Formatting records are interleaved with the
// text; the scrape keeps printable runs and leaves the rest to whitespace
// normalization downstream.
func extractLegacyDoc(data []byte) (string, error) {
	compound, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open compound file: %w", err)
	}

	for entry, err := compound.Next(); err == nil; entry, err = compound.Next() {
		if entry.Name != "WordDocument" {
			continue
		}
		stream, readErr := io.ReadAll(entry)
		if readErr != nil {
			return "", fmt.Errorf("read WordDocument stream: %w", readErr)
		}
		return scrapeDocStream(stream), nil
	}

	return "", errors.New("WordDocument stream not found")
}

func scrapeDocStream(stream []byte) string {
	if looksUTF16(stream) {
		return scrapeUTF16(stream)
	}
	return scrapeANSI(stream)
}

// looksUTF16 samples the stream for the zero-byte density typical of
// UTF-16LE encoded text regions.
func looksUTF16(stream []byte) bool {
	sample := stream
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	zeros := 0
	for _, b := range sample {
		if b == 0 {
			zeros++
		}
	}
	return len(sample) > 0 && zeros*4 >= len(sample)
}

func scrapeANSI(stream []byte) string {
	var sb strings.Builder
	for _, b := range stream {
		switch {
		case b == '\r':
			sb.WriteByte('\n')
		case b == '\t':
			sb.WriteByte(' ')
		case b >= 0x20 && b <= 0x7e:
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

func scrapeUTF16(stream []byte) string {
	units := make([]uint16, 0, len(stream)/2)
	for i := 0; i+1 < len(stream); i += 2 {
		units = append(units, uint16(stream[i])|uint16(stream[i+1])<<8)
	}

	var sb strings.Builder
	for _, r := range utf16.Decode(units) {
		switch {
		case r == '\r':
			sb.WriteByte('\n')
		case r == '\t':
			sb.WriteByte(' ')
		case r >= 0x20 && r != 0x7f:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
