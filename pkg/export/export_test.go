package export

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
	"github.com/vango-dev/storefront/pkg/dom"
)

type fakeUploader struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeUploader) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

var _ Uploader = (*s3.Client)(nil)

func TestSnapshotUploadsHTML(t *testing.T) {
	doc := dom.NewDocument("Storefront")
	p := dom.NewElement("p")
	p.AppendChild(dom.NewText("hi"))
	doc.Container().AppendChild(p)

	up := &fakeUploader{}
	key, err := Snapshot(context.Background(), up, "bucket", "", doc)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if !strings.HasPrefix(key, "snapshots/") || !strings.HasSuffix(key, ".html") {
		t.Errorf("key = %q", key)
	}
	if aws.ToString(up.input.Bucket) != "bucket" || aws.ToString(up.input.Key) != key {
		t.Errorf("input = %+v", up.input)
	}
	if !strings.HasPrefix(aws.ToString(up.input.ContentType), "text/html") {
		t.Errorf("ContentType = %q", aws.ToString(up.input.ContentType))
	}
	if !strings.Contains(up.body, "<p>hi</p>") {
		t.Errorf("body = %s", up.body)
	}
	if up.input.Metadata["title"] != "Storefront" || up.input.Metadata["mutations"] != "1" {
		t.Errorf("Metadata = %v", up.input.Metadata)
	}
}

func TestSnapshotExplicitKey(t *testing.T) {
	up := &fakeUploader{}
	key, err := Snapshot(context.Background(), up, "b", "home.html", dom.NewDocument("x"))
	if err != nil || key != "home.html" {
		t.Errorf("Snapshot() = %q, %v", key, err)
	}
}

func TestSnapshotError(t *testing.T) {
	denied := errors.New("access denied")
	up := &fakeUploader{err: denied}

	_, err := Snapshot(context.Background(), up, "b", "k", dom.NewDocument("x"))
	if !errors.Is(err, storeerrors.New("E301")) {
		t.Errorf("error = %v, want E301", err)
	}
	if !errors.Is(err, denied) {
		t.Error("error should wrap the upload failure")
	}
}
