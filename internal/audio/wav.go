package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// DecodeWAV reads a 16-bit PCM WAV stream and returns the samples of the
// first channel along with the sample rate. The extraction step upstream
// always produces mono 16 kHz, but multi-channel input is tolerated by
// taking channel zero.
func DecodeWAV(r io.Reader) ([]int16, int, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, 0, fmt.Errorf("read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, 0, errors.New("not a wav stream")
	}

	var (
		sampleRate    int
		numChannels   int
		bitsPerSample int
		haveFormat    bool
	)

	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, 0, errors.New("wav stream has no data chunk")
			}
			return nil, 0, fmt.Errorf("read chunk header: %w", err)
		}
		chunkID := string(chunk[0:4])
		chunkSize := int(binary.LittleEndian.Uint32(chunk[4:8]))

		switch chunkID {
		case "fmt ":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, 0, fmt.Errorf("read fmt chunk: %w", err)
			}
			if len(body) < 16 {
				return nil, 0, errors.New("fmt chunk too short")
			}
			audioFormat := int(binary.LittleEndian.Uint16(body[0:2]))
			if audioFormat != 1 {
				return nil, 0, fmt.Errorf("unsupported wav format %d (want PCM)", audioFormat)
			}
			numChannels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(body[14:16]))
			if bitsPerSample != 16 {
				return nil, 0, fmt.Errorf("unsupported bit depth %d (want 16)", bitsPerSample)
			}
			if numChannels < 1 {
				return nil, 0, errors.New("wav stream reports zero channels")
			}
			haveFormat = true
		case "data":
			if !haveFormat {
				return nil, 0, errors.New("wav data chunk before fmt chunk")
			}
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, 0, fmt.Errorf("read data chunk: %w", err)
			}
			frames := len(body) / (2 * numChannels)
			samples := make([]int16, frames)
			for i := 0; i < frames; i++ {
				offset := i * 2 * numChannels
				samples[i] = int16(binary.LittleEndian.Uint16(body[offset : offset+2]))
			}
			return samples, sampleRate, nil
		default:
			if _, err := io.CopyN(io.Discard, r, int64(chunkSize)); err != nil {
				return nil, 0, fmt.Errorf("skip %q chunk: %w", chunkID, err)
			}
		}
		// Chunks are word-aligned; odd sizes carry a pad byte.
		if chunkSize%2 == 1 {
			if _, err := io.CopyN(io.Discard, r, 1); err != nil && !errors.Is(err, io.EOF) {
				return nil, 0, fmt.Errorf("skip pad byte: %w", err)
			}
		}
	}
}

// LoadWAV decodes a WAV file from disk.
func LoadWAV(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()
	return DecodeWAV(f)
}
