package config

import (
	"testing"

	"github.com/vovakirdan/tui-canvas/internal/render"
)

func TestCanvasOptions(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		want    render.SwapPolicy
		wantErr bool
	}{
		{"default", "", render.SwapCopy, false},
		{"copy", "copy", render.SwapCopy, false},
		{"exchange", "exchange", render.SwapExchange, false},
		{"unknown", "flip", render.SwapCopy, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cc := DefaultConfig().Canvas
			cc.SwapPolicy = tc.policy

			opts, err := cc.Options()
			if tc.wantErr {
				if err == nil {
					t.Fatal("Options() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Options() failed: %v", err)
			}
			if opts.SwapPolicy != tc.want {
				t.Errorf("SwapPolicy = %v, expected %v", opts.SwapPolicy, tc.want)
			}
			if opts.MaxDirtyRegions != cc.MaxDirtyRegions || opts.MaxFrameBytes != cc.MaxFrameBytes {
				t.Errorf("limits not carried over: %+v", opts)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig() does not validate: %v", err)
	}
}
