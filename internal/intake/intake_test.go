package intake

import (
	"errors"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestValidate(t *testing.T) {
	v := NewValidator(0)
	tests := []struct {
		name        string
		contentType string
		size        int64
		want        error
	}{
		{"a.jpg", "image/jpeg", 10, nil},
		{"a.jpg", "image/jpg", 10, nil},
		{"a.png", "IMAGE/PNG", 10, nil},
		{"a.webp", "image/webp", MaxImageSize, nil},
		{"a.gif", "image/gif", 10, ErrUnsupportedType},
		{"a.pdf", "application/pdf", 10, ErrUnsupportedType},
		{"big.png", "image/png", MaxImageSize + 1, ErrTooLarge},
	}
	for _, tt := range tests {
		err := v.Validate(tt.name, tt.contentType, tt.size)
		if tt.want == nil && err != nil {
			t.Errorf("%s %s: unexpected error %v", tt.name, tt.contentType, err)
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("%s %s: expected %v, got %v", tt.name, tt.contentType, tt.want, err)
		}
	}
}

func TestDetectContentType(t *testing.T) {
	tests := map[string]struct {
		data []byte
		want string
	}{
		"png":  {pngHeader, "image/png"},
		"jpeg": {[]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), "image/jpeg"},
		"webp": {[]byte("RIFF\x1a\x00\x00\x00WEBPVP8L"), "image/webp"},
		"text": {[]byte("hello"), "text/plain; charset=utf-8"},
	}
	for name, tt := range tests {
		if got := DetectContentType(tt.data); got != tt.want {
			t.Errorf("%s: got %q, want %q", name, got, tt.want)
		}
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	v := NewValidator(32)
	files := []File{
		{Name: "one.png", Data: pngHeader},
		{Name: "notes.txt", Data: []byte("hello")},
		{Name: "two.png", ContentType: "image/png", Data: pngHeader},
		{Name: "huge.png", ContentType: "image/png", Data: make([]byte, 33)},
		{Name: "three.webp", ContentType: "image/webp", Data: []byte("RIFF")},
	}
	accepted, rejected := v.Filter(files)
	var names []string
	for _, f := range accepted {
		names = append(names, f.Name)
	}
	if len(names) != 3 || names[0] != "one.png" || names[1] != "two.png" || names[2] != "three.webp" {
		t.Errorf("accepted %v", names)
	}
	if accepted[0].ContentType != "image/png" {
		t.Errorf("sniffed type %q", accepted[0].ContentType)
	}
	if len(rejected) != 2 {
		t.Fatalf("rejected %d files, want 2", len(rejected))
	}
	if !errors.Is(rejected[0].Err, ErrUnsupportedType) || !errors.Is(rejected[1].Err, ErrTooLarge) {
		t.Errorf("unexpected rejections %v", rejected)
	}
}
