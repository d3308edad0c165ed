// Package generator renders compiled scripts to text artifacts: an
// executable Python script and a structure dump of the parse tree.
package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vidcmd/vidcmd/pkgs/plan"
)

// Python renders realized actions as a standalone Python script built on
// the ffmpeg-python bindings, with subprocess calls where the bindings
// have no equivalent. The script performs the same work the direct
// execution path performs, with the same already-evaluated argument
// values.
type Python struct {
	Player string // media player executable named in play calls
}

// Render produces the full script text. One block per action, blocks
// separated by a blank line.
func (g Python) Render(actions []plan.Action) string {
	var b strings.Builder
	b.WriteString("import ffmpeg\n")
	b.WriteString("import subprocess\n\n")
	for _, action := range actions {
		g.renderAction(&b, action)
		b.WriteString("\n")
	}
	return b.String()
}

func (g Python) renderAction(b *strings.Builder, action plan.Action) {
	switch a := action.(type) {
	case plan.PlayAction:
		fmt.Fprintf(b, "subprocess.run([%q, %q", g.Player, a.Source)
		if a.Start != nil {
			fmt.Fprintf(b, ", \"--start-time\", %q, \"--stop-time\", %q",
				strconv.Itoa(a.Start.TotalSeconds()), strconv.Itoa(a.End.TotalSeconds()))
		}
		b.WriteString("])\n")

	case plan.FrameAction:
		fmt.Fprintf(b, "ffmpeg.input(%q).filter(\"select\", \"eq(n\\\\,%d)\").output(%q, vframes=1).run()\n",
			a.Source, a.Index, a.Dest)

	case plan.ConcatAction:
		b.WriteString("# Convert inputs\n")
		fmt.Fprintf(b, "ffmpeg.input(%q).output(\"converted_0.mp4\", vcodec='libx264', acodec='aac').run()\n", a.SourceA)
		fmt.Fprintf(b, "ffmpeg.input(%q).output(\"converted_1.mp4\", vcodec='libx264', acodec='aac').run()\n\n", a.SourceB)
		b.WriteString("# Write concat file list\n")
		b.WriteString("with open('files.txt', 'w') as f:\n")
		b.WriteString("    f.write(\"file 'converted_0.mp4'\\n\")\n")
		b.WriteString("    f.write(\"file 'converted_1.mp4'\\n\")\n\n")
		b.WriteString("# Concatenate with concat demuxer\n")
		fmt.Fprintf(b, "subprocess.run(['ffmpeg', '-f', 'concat', '-safe', '0', '-i', 'files.txt', '-c', 'copy', '%s'])\n", a.Dest)

	case plan.AudioAction:
		fmt.Fprintf(b, "ffmpeg.input(%q, ss=%q, to=%q).output(%q, vn=None, acodec='mp3').run()\n",
			a.Source, a.Start.String(), a.End.String(), a.Dest)
	}
}
