package images

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

// fakeFile adapts a bytes.Reader to multipart.File.
type fakeFile struct {
	*bytes.Reader
}

func (fakeFile) Close() error { return nil }

// 1x1 transparent PNG
var tinyPNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

func TestToDataURI(t *testing.T) {
	uri, err := ToDataURI(fakeFile{bytes.NewReader(tinyPNG)})
	if err != nil {
		t.Fatalf("ToDataURI failed: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("unexpected prefix: %q", uri[:30])
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, tinyPNG) {
		t.Error("round-tripped bytes differ from upload")
	}
}

func TestToDataURIRejectsNonImage(t *testing.T) {
	if _, err := ToDataURI(fakeFile{bytes.NewReader([]byte("just some plain text, not pixels"))}); err == nil {
		t.Error("expected rejection of non-image upload")
	}
}

func TestToDataURIRejectsEmpty(t *testing.T) {
	if _, err := ToDataURI(fakeFile{bytes.NewReader(nil)}); err == nil {
		t.Error("expected rejection of empty upload")
	}
}

func TestIsDataURI(t *testing.T) {
	if !IsDataURI("data:image/png;base64,AAAA") {
		t.Error("data URI not recognized")
	}
	if IsDataURI("https://example.com/photo.png") {
		t.Error("external URL misclassified as data URI")
	}
}
