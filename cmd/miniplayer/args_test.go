package main

import "testing"

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		trace bool
		path  string
	}{
		{"none", nil, false, ""},
		{"positional", []string{"song.mp3"}, false, "song.mp3"},
		{"open flag", []string{"--open", "list.m3u"}, false, "list.m3u"},
		{"single dash open", []string{"-open", "list.m3u"}, false, "list.m3u"},
		{"open with equals", []string{"--open=list.m3u"}, false, "list.m3u"},
		{"open wins", []string{"--open", "a.mp3", "b.mp3"}, false, "a.mp3"},
		{"open value may start with a dash", []string{"--open", "-odd.mp3"}, false, "-odd.mp3"},
		{"trace", []string{"-traceLog", "a.flac"}, true, "a.flac"},
		{"trace after path", []string{"a.flac", "--traceLog"}, true, "a.flac"},
		{"trace disabled", []string{"-traceLog=false"}, false, ""},
		{"first positional only", []string{"a.mp3", "b.mp3"}, false, "a.mp3"},
		{"launcher serial skipped", []string{"-psn_0_12345", "song.prot"}, false, "song.prot"},
		{"unknown flags skipped", []string{"-bogus", "--also=1", "song.prot"}, false, "song.prot"},
		{"dangling open", []string{"--open"}, false, ""},
		{"positional before dangling open", []string{"a.mp3", "--open"}, false, "a.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseArgs(tt.args)
			if got.traceLog != tt.trace || got.path != tt.path {
				t.Fatalf("got %+v, want trace=%v path=%q", got, tt.trace, tt.path)
			}
		})
	}
}
