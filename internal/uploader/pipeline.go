// Package uploader pushes large photo batches to the gallery in fixed-size
// chunks, one request in flight at a time, and reports running progress.
package uploader

import (
	"context"
	"math"

	"github.com/tablomester/tablomester/internal/constants"
	"github.com/tablomester/tablomester/internal/review"
)

// SendFunc uploads one chunk of files and returns the stored photo
// descriptors. The pipeline treats any error as a failed chunk and keeps
// going.
type SendFunc func(ctx context.Context, files []string) ([]review.UploadedPhoto, error)

// Progress is the running aggregate state of a chunked upload. CurrentChunk
// and Progress advance monotonically until Completed.
type Progress struct {
	UploadedCount int                    `json:"uploadedCount"`
	TotalCount    int                    `json:"totalCount"`
	CurrentChunk  int                    `json:"currentChunk"`
	TotalChunks   int                    `json:"totalChunks"`
	Progress      int                    `json:"progress"`
	Completed     bool                   `json:"completed"`
	ErrorCount    int                    `json:"errorCount"`
	Photos        []review.UploadedPhoto `json:"photos,omitempty"`
}

// Pipeline uploads file batches chunk by chunk. Chunks go out strictly
// sequentially: the next request is not issued until the previous one
// resolves, keeping at most one chunk's worth of form data in memory and
// making progress deterministic.
type Pipeline struct {
	ChunkSize int
	Send      SendFunc
}

// NewPipeline creates a pipeline with the default chunk size.
func NewPipeline(send SendFunc) *Pipeline {
	return &Pipeline{ChunkSize: constants.DefaultChunkSize, Send: send}
}

// splitChunks splits files into fixed-size chunks, preserving order. The last
// chunk may be shorter.
func splitChunks(files []string, chunkSize int) [][]string {
	chunks := make([][]string, 0, (len(files)+chunkSize-1)/chunkSize)
	for start := 0; start < len(files); start += chunkSize {
		end := start + chunkSize
		if end > len(files) {
			end = len(files)
		}
		chunks = append(chunks, files[start:end])
	}
	return chunks
}

// Run uploads the batch and streams progress events, one per completed chunk.
// The channel is closed when the batch finishes or ctx is cancelled; the last
// event before a normal close always has Completed true and Progress 100. A
// failed chunk adds its size to ErrorCount and never aborts the remaining
// chunks. An empty batch emits a single terminal event without any upload
// call.
func (p *Pipeline) Run(ctx context.Context, files []string) <-chan Progress {
	events := make(chan Progress, constants.EventChannelBuffer)

	go func() {
		defer close(events)

		if len(files) == 0 {
			events <- Progress{Progress: 100, Completed: true}
			return
		}

		chunkSize := p.ChunkSize
		if chunkSize <= 0 {
			chunkSize = constants.DefaultChunkSize
		}

		chunks := splitChunks(files, chunkSize)
		state := Progress{
			TotalCount:  len(files),
			TotalChunks: len(chunks),
		}

		for _, chunk := range chunks {
			if ctx.Err() != nil {
				return
			}

			photos, err := p.Send(ctx, chunk)
			if err != nil {
				// whole chunk counted as failed, at nominal chunk size
				state.ErrorCount += chunkSize
			} else {
				state.UploadedCount += len(photos)
				state.Photos = append(state.Photos, photos...)
			}

			state.CurrentChunk++
			state.Progress = int(math.Round(float64(state.CurrentChunk) / float64(state.TotalChunks) * 100))
			state.Completed = state.CurrentChunk == state.TotalChunks

			events <- state
		}
	}()

	return events
}
