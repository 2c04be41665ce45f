package upload

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const defaultBucket = "image-files"

var buckets = map[string]string{
	"audio":       "audio-files",
	"video":       "video-files",
	"image":       "image-files",
	"drone_video": "drone-footage",
	"drone_photo": "image-files",
	"other":       "image-files",
}

// BucketFor maps a file type or geographic content type to its storage
// bucket. Unknown kinds go to the image bucket.
func BucketFor(kind string) string {
	if b, ok := buckets[kind]; ok {
		return b
	}
	return defaultBucket
}

// ObjectKey builds a collision-free key: prefix, a random UUID, then the
// extension of the original file name.
func ObjectKey(prefix, filename string) string {
	return prefix + uuid.NewString() + filepath.Ext(filename)
}

func contentTypeOf(f *File) string {
	if ct := strings.TrimSpace(f.ContentType); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
