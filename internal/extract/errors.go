package extract

import "errors"

// Sentinel errors for the extraction pipeline. Callers classify failures with
// errors.Is; the concrete cause is carried in the wrapping message.
var (
	// ErrDecode means the transport encoding of the submission was invalid.
	ErrDecode = errors.New("invalid document encoding")
	// ErrRender means the PDF could not be rasterized (corrupt or zero pages).
	ErrRender = errors.New("failed to render PDF")
	// ErrOCR means the text detection service call failed.
	ErrOCR = errors.New("text detection failed")
	// ErrModel means the model call failed or returned no content.
	ErrModel = errors.New("model extraction failed")
	// ErrParse means the model responded, but not with valid JSON. The
	// orchestrator recovers from this one; everything above is fatal.
	ErrParse = errors.New("model response is not valid JSON")

	// ErrStaging and ErrNotify are back-office failures; they are logged and
	// never surfaced to the submitting caller.
	ErrStaging = errors.New("failed to stage extraction record")
	ErrNotify  = errors.New("failed to publish notification")

	// Consumer-side, recovered per item.
	ErrMissingField   = errors.New("notification is missing a required field")
	ErrInvalidPayload = errors.New("staged record has an unexpected shape")
)
