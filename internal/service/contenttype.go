package service

import (
	"path/filepath"
	"strings"
)

// contentTypes is the fixed extension table carried over from the platform's
// upload contract. Anything else resolves to a generic binary type.
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".mp3":  "audio/mpeg",
	".txt":  "text/plain",
	".zip":  "application/zip",
}

// ContentTypeFor maps a file name to a MIME type by its extension,
// case-insensitively. Total function: unknown extensions (or none) return
// application/octet-stream.
func ContentTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
