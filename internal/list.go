package internal

import (
	"fmt"
	"io"

	"github.com/korneil/launchif/internal/launch"
	"github.com/logrusorgru/aurora"
)

type listVisualSetting struct {
	indicator      string
	indicatorColor uint8
	msgColor       uint8
}

var listVisualSettings = map[string]*listVisualSetting{
	"cortex-debug": {indicator: "●", indicatorColor: 10, msgColor: 15},
	"cppdbg":       {indicator: "○", indicatorColor: 12, msgColor: 7},
	"gdb":          {indicator: "○", indicatorColor: 12, msgColor: 7},
}

func (x *listVisualSetting) Indicator() string {
	if x == nil {
		return " "
	}
	r := aurora.Reset(x.indicator)
	if x.indicatorColor > 0 {
		r = r.Index(x.indicatorColor)
	}
	return r.String()
}

func (x *listVisualSetting) Coloredf(format string, a ...interface{}) string {
	r := aurora.Reset(fmt.Sprintf(format, a...))
	if x != nil && x.msgColor > 0 {
		r = r.Index(x.msgColor)
	}
	return r.String()
}

// PrintList writes one line per configuration, newest first. Repeated names
// are suffixed with their occurrence index.
func PrintList(w io.Writer, path string, doc *launch.Document) {
	fmt.Fprintf(w, "%s %s\n", aurora.Bold(path), aurora.BrightBlack(fmt.Sprintf("(version %s)", doc.Version)))

	summaries := doc.Summaries()
	if len(summaries) == 0 {
		fmt.Fprintln(w, aurora.BrightBlack("  no configurations"))
		return
	}

	seen := make(map[string]int, len(summaries))
	for i, s := range summaries {
		name := s.Name
		if name == "" {
			name = "<unnamed>"
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name += toSubscript(n)
		}

		v := listVisualSettings[s.Type]
		line := fmt.Sprintf("%3d %s %s", i, v.Indicator(), v.Coloredf("%s", name))
		if s.Type != "" {
			line += " " + aurora.BrightBlack("["+s.Type+"]").String()
		}
		if s.Device != "" {
			line += " " + aurora.Cyan(s.Device).String()
		}
		fmt.Fprintln(w, line)
	}
}
