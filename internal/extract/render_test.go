package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRejectsGarbageBytes(t *testing.T) {
	r := Renderer{}

	_, err := r.Render([]byte("this is definitely not a PDF"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRender)
}

func TestRenderRejectsEmptyInput(t *testing.T) {
	r := Renderer{}

	_, err := r.Render(nil)
	assert.ErrorIs(t, err, ErrRender)
}

func TestRenderRejectsTruncatedPDF(t *testing.T) {
	r := Renderer{}

	// A valid header with nothing behind it.
	_, err := r.Render([]byte("%PDF-1.7\n"))
	assert.ErrorIs(t, err, ErrRender)
}
