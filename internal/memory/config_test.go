package memory

import (
	"testing"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestConfigure(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantSource string
		wantLimit  int64
		wantSet    int64
		wantRatio  float64
	}{
		{
			name:       "nothing set",
			env:        map[string]string{},
			wantSource: "none",
		},
		{
			name:       "MEMORY_LIMIT with default ratio",
			env:        map[string]string{"MEMORY_LIMIT": "1000"},
			wantSource: "MEMORY_LIMIT",
			wantLimit:  750,
			wantSet:    750,
			wantRatio:  DefaultMemoryRatio,
		},
		{
			name:       "MEMORY_LIMIT with custom ratio",
			env:        map[string]string{"MEMORY_LIMIT": "1000", "MEMORY_RATIO": "0.5"},
			wantSource: "MEMORY_LIMIT",
			wantLimit:  500,
			wantSet:    500,
			wantRatio:  0.5,
		},
		{
			name:       "ratio out of range falls back",
			env:        map[string]string{"MEMORY_LIMIT": "1000", "MEMORY_RATIO": "1.5"},
			wantSource: "MEMORY_LIMIT",
			wantLimit:  750,
			wantSet:    750,
			wantRatio:  DefaultMemoryRatio,
		},
		{
			name:       "unparsable MEMORY_LIMIT",
			env:        map[string]string{"MEMORY_LIMIT": "lots"},
			wantSource: "none",
		},
		{
			name:       "GOMEMLIMIT takes precedence",
			env:        map[string]string{"GOMEMLIMIT": "500MiB", "MEMORY_LIMIT": "1000"},
			wantSource: "GOMEMLIMIT",
			wantLimit:  524288000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set int64
			setLimit := func(v int64) int64 {
				if v < 0 {
					return 524288000
				}
				set = v
				return 0
			}

			result := configure(fakeEnv(tt.env), setLimit)

			if result.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", result.Source, tt.wantSource)
			}
			if result.GoMemLimit != tt.wantLimit {
				t.Errorf("GoMemLimit = %d, want %d", result.GoMemLimit, tt.wantLimit)
			}
			if set != tt.wantSet {
				t.Errorf("runtime limit set to %d, want %d", set, tt.wantSet)
			}
			if result.Ratio != tt.wantRatio {
				t.Errorf("Ratio = %f, want %f", result.Ratio, tt.wantRatio)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{100 * 1024 * 1024, "100.0 MiB"},
		{2 * 1024 * 1024 * 1024, "2.0 GiB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
