package media

import "context"

// Normalizer turns an uploaded asset into canonical audio inside a job's scratch space
type Normalizer interface {
	Normalize(ctx context.Context, asset Asset, scratch *Scratch) (*Audio, error)
}
