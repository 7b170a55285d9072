package gcp

import (
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/stretchr/testify/assert"
)

func word(text string, breakType visionpb.TextAnnotation_DetectedBreak_BreakType) *visionpb.Word {
	symbols := make([]*visionpb.Symbol, 0, len(text))
	for i, r := range text {
		s := &visionpb.Symbol{Text: string(r)}
		if i == len(text)-1 {
			s.Property = &visionpb.TextAnnotation_TextProperty{
				DetectedBreak: &visionpb.TextAnnotation_DetectedBreak{Type: breakType},
			}
		}
		symbols = append(symbols, s)
	}
	return &visionpb.Word{Symbols: symbols}
}

func TestAssembleLinesSplitsOnLineBreaks(t *testing.T) {
	annotation := &visionpb.TextAnnotation{
		Pages: []*visionpb.Page{{
			Blocks: []*visionpb.Block{{
				Paragraphs: []*visionpb.Paragraph{{
					Words: []*visionpb.Word{
						word("Jane", visionpb.TextAnnotation_DetectedBreak_SPACE),
						word("Doe", visionpb.TextAnnotation_DetectedBreak_EOL_SURE_SPACE),
						word("jane@x.com", visionpb.TextAnnotation_DetectedBreak_LINE_BREAK),
					},
				}},
			}},
		}},
	}

	assert.Equal(t, []string{"Jane Doe", "jane@x.com"}, assembleLines(annotation))
}

func TestAssembleLinesFlushesTrailingContent(t *testing.T) {
	annotation := &visionpb.TextAnnotation{
		Pages: []*visionpb.Page{{
			Blocks: []*visionpb.Block{{
				Paragraphs: []*visionpb.Paragraph{{
					Words: []*visionpb.Word{
						// No terminal break reported at all.
						word("DNI", visionpb.TextAnnotation_DetectedBreak_SPACE),
						word("12345678", visionpb.TextAnnotation_DetectedBreak_UNKNOWN),
					},
				}},
			}},
		}},
	}

	assert.Equal(t, []string{"DNI 12345678"}, assembleLines(annotation))
}

func TestAssembleLinesKeepsHyphenAtLineEnd(t *testing.T) {
	annotation := &visionpb.TextAnnotation{
		Pages: []*visionpb.Page{{
			Blocks: []*visionpb.Block{{
				Paragraphs: []*visionpb.Paragraph{{
					Words: []*visionpb.Word{
						word("multi", visionpb.TextAnnotation_DetectedBreak_HYPHEN),
						word("line", visionpb.TextAnnotation_DetectedBreak_LINE_BREAK),
					},
				}},
			}},
		}},
	}

	assert.Equal(t, []string{"multi-", "line"}, assembleLines(annotation))
}

func TestAssembleLinesEmptyAnnotation(t *testing.T) {
	assert.Empty(t, assembleLines(&visionpb.TextAnnotation{}))
}
