package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "default styles highlighted code",
			styleName:   "default",
			wantContain: "figure.highlight",
		},
		{
			name:        "dark sets a dark background",
			styleName:   "dark",
			wantContain: "#0d1117",
		},
		{
			name:        "minimal bounds images",
			styleName:   "minimal",
			wantContain: "max-width: 100%",
		},
		{
			name:      "unknown style",
			styleName: "solarized-xyz",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "empty name",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "traversal",
			styleName: "../embedded",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_Names(t *testing.T) {
	t.Parallel()

	got := NewEmbeddedLoader().Names()
	want := []string{"dark", "default", "minimal"}
	if !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestPackageLevel(t *testing.T) {
	t.Parallel()

	css, err := LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle(%q) unexpected error: %v", DefaultStyleName, err)
	}
	if css == "" {
		t.Error("default style is empty")
	}
	if !slices.Contains(StyleNames(), DefaultStyleName) {
		t.Errorf("StyleNames() = %v, missing %q", StyleNames(), DefaultStyleName)
	}
}
