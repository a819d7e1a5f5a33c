package config

import "testing"

func TestParseEnvSwitches(t *testing.T) {
	tests := []struct {
		value string
		want  Switch
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"Yes", true},
		{" on ", true},
		{"0", false},
		{"off", false},
		{"nope", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("MINIPLAYER_MEM_TRACE", tt.value)
			t.Setenv("MINIPLAYER_TRACE_LOG", tt.value)
			e, err := ParseEnv()
			if err != nil {
				t.Fatalf("ParseEnv: %v", err)
			}
			if e.MemTrace != tt.want || e.TraceLog != tt.want {
				t.Fatalf("MemTrace=%v TraceLog=%v, want %v", e.MemTrace, e.TraceLog, tt.want)
			}
		})
	}
}
