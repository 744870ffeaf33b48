package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Saved %s to %d slots", []string{"%s", "%d"}},
		{"Slot %1 of %2", []string{"%1", "%2"}},
		{"{0} files, ${count} left", []string{"{0}", "${count}"}},
		{"100%% done", []string{"%%"}},
		{"Speed: %.2f%%", []string{"%.2f", "%%"}},
		{"No placeholders here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestDiff(t *testing.T) {
	missing, extra := Diff("Saved %s to slot %d", "Gespeichert in %d: %s")
	assert.Empty(t, missing)
	assert.Empty(t, extra)

	missing, extra = Diff("Frames: %d", "Bilder")
	assert.Equal(t, []string{"%d"}, missing)
	assert.Empty(t, extra)

	missing, extra = Diff("%s and %s", "%s et %d")
	assert.Equal(t, []string{"%s"}, missing)
	assert.Equal(t, []string{"%d"}, extra)
}
