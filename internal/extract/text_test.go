package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	lines []string
	err   error
}

func (d *fakeDetector) DetectLines(_ context.Context, _ []byte) ([]string, error) {
	return d.lines, d.err
}

func TestTextExtractorJoinsLinesInOrder(t *testing.T) {
	e := NewTextExtractor(&fakeDetector{lines: []string{"Jane Doe", "jane@x.com", "DNI 12345678"}})

	text, err := e.Extract(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\njane@x.com\nDNI 12345678", text)
}

func TestTextExtractorDropsBlankLines(t *testing.T) {
	e := NewTextExtractor(&fakeDetector{lines: []string{"  Jane Doe ", "", "   ", "jane@x.com"}})

	text, err := e.Extract(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\njane@x.com", text)
}

func TestTextExtractorEmptyPage(t *testing.T) {
	e := NewTextExtractor(&fakeDetector{})

	text, err := e.Extract(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestTextExtractorServiceFailureIsOCRError(t *testing.T) {
	e := NewTextExtractor(&fakeDetector{err: errors.New("unavailable")})

	_, err := e.Extract(context.Background(), []byte("png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOCR)
}
