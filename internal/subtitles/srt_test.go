package subtitles

import (
	"strings"
	"testing"
	"time"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
Bonjour tout le monde

2
00:00:04,000 --> 00:00:07,250
On se retrouve aujourd'hui
pour une nouvelle vidéo

3
00:00:08,000 --> 00:00:09,000
Incroyable
`

func TestParseSRT(t *testing.T) {
	cues, err := ParseSRT(sampleSRT)
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}

	first := cues[0]
	if first.Index != 1 {
		t.Fatalf("index = %d", first.Index)
	}
	if first.Start != time.Second || first.End != 3500*time.Millisecond {
		t.Fatalf("timing = %v .. %v", first.Start, first.End)
	}
	if first.Text != "Bonjour tout le monde" {
		t.Fatalf("text = %q", first.Text)
	}

	// Multi-line cue text joins onto one logical line.
	if cues[1].Text != "On se retrouve aujourd'hui pour une nouvelle vidéo" {
		t.Fatalf("joined text = %q", cues[1].Text)
	}
}

func TestParseSRTSkipsShortBlocks(t *testing.T) {
	data := "1\n00:00:01,000 --> 00:00:02,000\n\n\n2\n00:00:03,000 --> 00:00:04,000\nOk\n"
	cues, err := ParseSRT(data)
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "Ok" {
		t.Fatalf("expected the one complete cue, got %+v", cues)
	}
}

func TestParseSRTMalformedTiming(t *testing.T) {
	if _, err := ParseSRT("1\nnot a timing line\nText\n"); err == nil {
		t.Fatal("malformed timing must fail")
	}
}

func TestWriteSRTRoundTrip(t *testing.T) {
	cues, err := ParseSRT(sampleSRT)
	if err != nil {
		t.Fatal(err)
	}
	out := WriteSRT(cues)
	if !strings.Contains(out, "00:00:01,000 --> 00:00:03,500") {
		t.Fatalf("timing line missing:\n%s", out)
	}

	again, err := ParseSRT(out)
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if len(again) != len(cues) {
		t.Fatalf("round trip lost cues: %d vs %d", len(again), len(cues))
	}
}

func TestCleanForShortsWraps(t *testing.T) {
	cues := []Cue{{
		Index: 1,
		Start: 0,
		End:   time.Second,
		Text:  "On se retrouve aujourd'hui pour une nouvelle vidéo incroyable",
	}}

	cleaned := CleanForShorts(cues, 0)
	for _, line := range strings.Split(cleaned[0].Text, "\n") {
		if len([]rune(line)) > 35 {
			t.Fatalf("line exceeds 35 columns: %q", line)
		}
	}
	if strings.Count(cleaned[0].Text, "\n") == 0 {
		t.Fatal("long text must wrap onto multiple lines")
	}
}

func TestFormatTimestamp(t *testing.T) {
	d := time.Hour + 2*time.Minute + 3*time.Second + 450*time.Millisecond
	if got := FormatTimestamp(d); got != "01:02:03,450" {
		t.Fatalf("FormatTimestamp = %q", got)
	}
	if got := FormatTimestamp(-time.Second); got != "00:00:00,000" {
		t.Fatalf("negative duration = %q", got)
	}
}

func TestWriteASS(t *testing.T) {
	cues := []Cue{{
		Index: 1,
		Start: 1500 * time.Millisecond,
		End:   3 * time.Second,
		Text:  "Première ligne\nseconde ligne",
	}}

	out := WriteASS(cues)
	if !strings.Contains(out, "PlayResX: 1080") || !strings.Contains(out, "PlayResY: 1920") {
		t.Fatalf("vertical play resolution missing:\n%s", out)
	}
	if !strings.Contains(out, `Dialogue: 0,0:00:01.50,0:00:03.00,Default,,0,0,0,,Première ligne\Nseconde ligne`) {
		t.Fatalf("dialogue line wrong:\n%s", out)
	}
}
