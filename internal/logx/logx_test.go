package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level int
		quiet bool
		want  []string
		skip  []string
	}{
		{LevelDefault, false, []string{"[*] info", "[+] ok", "[!] warn"}, []string{"debug", "trace"}},
		{LevelDebug, false, []string{"[-] debug"}, []string{"trace"}},
		{LevelTrace, false, []string{"[-] debug", "[.] trace"}, nil},
		{LevelTrace, true, []string{"[!] warn"}, []string{"info", "ok", "debug", "trace"}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		l := NewWriter(&buf, tt.level, tt.quiet)
		l.Infof("info")
		l.Successf("ok")
		l.Warnf("warn")
		l.Debugf("debug")
		l.Tracef("trace")

		out := buf.String()
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("level %d quiet %v: missing %q in %q", tt.level, tt.quiet, w, out)
			}
		}
		for _, s := range tt.skip {
			if strings.Contains(out, s) {
				t.Errorf("level %d quiet %v: unexpected %q in %q", tt.level, tt.quiet, s, out)
			}
		}
	}
}

func TestAroundHooks(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelDefault, false)
	l.Around(func() { buf.WriteString("<") }, func() { buf.WriteString(">") })
	l.Warnf("x")
	if got := buf.String(); got != "<[!] x\n>" {
		t.Errorf("got %q", got)
	}
}
