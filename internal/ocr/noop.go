package ocr

import "context"

// NoopRecognizer returns empty text for every page. Used when OCR is
// disabled; the heuristic engine then only sees model or filename signals.
type NoopRecognizer struct{}

func (NoopRecognizer) RecognizeAll(_ context.Context, _ [][]byte) (string, error) {
	return "", nil
}
