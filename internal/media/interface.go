package media

import "context"

// Normalizer converts arbitrary input media into canonical audio:
// mono, 16 kHz, 16-bit PCM WAV. Every downstream stage assumes this format.
type Normalizer interface {
	Normalize(ctx context.Context, inputPath string) (string, error)
}
