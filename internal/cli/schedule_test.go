package cli

import (
	"testing"

	"github.com/slacklinehq/slackline/pkg/errors"
)

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		specs   []string
		want    map[string]float64
		wantErr bool
	}{
		{
			name:  "empty",
			specs: nil,
			want:  nil,
		},
		{
			name:  "single",
			specs: []string{"b=6"},
			want:  map[string]float64{"b": 6},
		},
		{
			name:  "multiple with fraction",
			specs: []string{"b=6", "c=2.5"},
			want:  map[string]float64{"b": 6, "c": 2.5},
		},
		{
			name:    "missing equals",
			specs:   []string{"b6"},
			wantErr: true,
		},
		{
			name:    "empty id",
			specs:   []string{"=6"},
			wantErr: true,
		},
		{
			name:    "non-numeric start",
			specs:   []string{"b=soon"},
			wantErr: true,
		},
		{
			name:    "negative start",
			specs:   []string{"b=-1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOverrides(tt.specs)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("error code = %v, want invalid input", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOverrides: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for id, v := range tt.want {
				if got[id] != v {
					t.Errorf("got[%s] = %v, want %v", id, got[id], v)
				}
			}
		})
	}
}
