package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	chunk := bytes.Repeat([]byte{0x42}, 32*1024)
	for remaining := size; remaining > 0; {
		n := int64(len(chunk))
		if remaining < n {
			n = remaining
		}
		if _, err := f.Write(chunk[:n]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= n
	}
}

// WriteWAV writes a minimal 16-bit mono PCM WAV file containing the provided
// samples at the given sample rate.
func WriteWAV(t testing.TB, path string, sampleRate int, samples []int16) {
	t.Helper()

	dataLen := len(samples) * 2
	var buf bytes.Buffer
	writeLE := func(value any) {
		_ = binary.Write(&buf, binary.LittleEndian, value)
	}
	buf.WriteString("RIFF")
	writeLE(uint32(36 + dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	writeLE(uint32(16))
	writeLE(uint16(1))
	writeLE(uint16(1))
	writeLE(uint32(sampleRate))
	writeLE(uint32(sampleRate * 2))
	writeLE(uint16(2))
	writeLE(uint16(16))
	buf.WriteString("data")
	writeLE(uint32(dataLen))
	for _, sample := range samples {
		writeLE(sample)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
