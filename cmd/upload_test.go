package cmd

import (
	"testing"

	"github.com/tablomester/tablomester/internal/uploader"
)

func TestProgressDone(t *testing.T) {
	tests := []struct {
		name     string
		progress uploader.Progress
		total    int
		want     int
	}{
		{
			name:     "mid-batch",
			progress: uploader.Progress{UploadedCount: 10},
			total:    23,
			want:     10,
		},
		{
			name:     "uploads and errors combined",
			progress: uploader.Progress{UploadedCount: 10, ErrorCount: 5},
			total:    23,
			want:     15,
		},
		{
			name: "failed short final chunk counted at nominal size",
			// 23 files in chunks of 10: the last chunk holds 3 files but a
			// failure adds the nominal 10 to the error count.
			progress: uploader.Progress{UploadedCount: 20, ErrorCount: 10},
			total:    23,
			want:     23,
		},
		{
			name:     "empty batch",
			progress: uploader.Progress{},
			total:    0,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressDone(tt.progress, tt.total); got != tt.want {
				t.Errorf("progressDone() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"portrait.jpg", true},
		{"portrait.JPEG", true},
		{"scan.heic", true},
		{"notes.txt", false},
		{"archive.zip", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := isImageFile(tt.name); got != tt.want {
			t.Errorf("isImageFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
