package subtitles

import (
	"fmt"
	"strings"
	"time"
)

// assHeader targets the 1080x1920 vertical frame the clip renderer
// produces. The single Default style is bottom-centred with an outline so
// the text stays readable over any footage.
const assHeader = `[Script Info]
ScriptType: v4.00+
PlayResX: 1080
PlayResY: 1920
WrapStyle: 0
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,72,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,-1,0,0,0,100,100,0,0,1,4,2,2,60,60,220,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

// WriteASS renders cues as an Advanced SubStation Alpha document suitable
// for burn-in. Line breaks inside a cue become ASS hard breaks.
func WriteASS(cues []Cue) string {
	var b strings.Builder
	b.WriteString(assHeader)
	for _, cue := range cues {
		text := strings.ReplaceAll(cue.Text, "\n", `\N`)
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			assTimestamp(cue.Start), assTimestamp(cue.End), text)
	}
	return b.String()
}

// assTimestamp renders a duration as the ASS H:MM:SS.cc form, centisecond
// precision.
func assTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	cs := (d % time.Second) / (10 * time.Millisecond)
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}
