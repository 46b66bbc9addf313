package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "application/pdf"},
		{"report.PDF", "application/pdf"}, // extension match is case-insensitive
		{"slides.pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
		{"sheet.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"photo.JPeG", "image/jpeg"},
		{"lecture.mp4", "video/mp4"},
		{"note.txt", "text/plain"},
		{"bundle.zip", "application/zip"},
		{"archive.tar", "application/octet-stream"}, // unknown extension falls back
		{"noextension", "application/octet-stream"},
		{"", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentTypeFor(tt.filename))
		})
	}
}
