package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr error
	}{
		{"default", nil},
		{"my-style", nil},
		{"report_2024", nil},
		{"Dark", nil},
		{"", ErrInvalidAssetName},
		{"styles/dark", ErrInvalidAssetName},
		{"styles\\dark", ErrInvalidAssetName},
		{"..", ErrInvalidAssetName},
		{"../etc/passwd", ErrInvalidAssetName},
		{"dark.css", ErrInvalidAssetName},
		{".hidden", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
