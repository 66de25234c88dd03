package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeS3Client implements S3Client in memory.
type fakeS3Client struct {
	objects map[string]Object
	putErr  error
}

func newFakeS3Client() *fakeS3Client {
	return &fakeS3Client{objects: make(map[string]Object)}
}

func (f *fakeS3Client) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Key)] = Object{
		ContentType: aws.ToString(params.ContentType),
		Data:        data,
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3Client) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	obj, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(strings.NewReader(string(obj.Data))),
		ContentType: aws.String(obj.ContentType),
	}, nil
}

func (f *fakeS3Client) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_PutGetDelete(t *testing.T) {
	client := newFakeS3Client()
	s := NewS3StoreWithClient(client, "images")
	ctx := context.Background()

	key := Key("rec-1", "image/jpeg")
	data := []byte{0xFF, 0xD8, 0xFF}

	if err := s.Put(ctx, key, "image/jpeg", data); err != nil {
		t.Fatalf("unexpected put error: %v", err)
	}

	obj, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if obj.ContentType != "image/jpeg" {
		t.Errorf("expected content type image/jpeg, got %q", obj.ContentType)
	}
	if len(obj.Data) != len(data) {
		t.Errorf("expected %d bytes, got %d", len(data), len(obj.Data))
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, err := s.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestS3Store_PutErrorIsWrapped(t *testing.T) {
	client := newFakeS3Client()
	client.putErr = errors.New("access denied")
	s := NewS3StoreWithClient(client, "images")

	err := s.Put(context.Background(), "uploads/x.png", "image/png", []byte("data"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "uploads/x.png") {
		t.Errorf("expected error to name the key, got %v", err)
	}
}
