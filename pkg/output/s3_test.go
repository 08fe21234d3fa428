package output

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// mockS3 records PutObject calls
type mockS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (m *mockS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.inputs = append(m.inputs, input)
	m.bodies = append(m.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Publisher_Publish(t *testing.T) {
	client := &mockS3{}
	publisher := NewS3PublisherWithClient(client, "renders", "scenes/default")

	key, err := publisher.Publish(context.Background(), "render.png", testImage(4, 4))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != "scenes/default/render.png" {
		t.Errorf("Unexpected key: %s", key)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("Expected one upload, got %d", len(client.inputs))
	}

	input := client.inputs[0]
	if aws.StringValue(input.Bucket) != "renders" {
		t.Errorf("Unexpected bucket: %s", aws.StringValue(input.Bucket))
	}
	if aws.StringValue(input.ContentType) != "image/png" {
		t.Errorf("Unexpected content type: %s", aws.StringValue(input.ContentType))
	}
	if aws.Int64Value(input.ContentLength) != int64(len(client.bodies[0])) {
		t.Errorf("Content length %d does not match body %d", aws.Int64Value(input.ContentLength), len(client.bodies[0]))
	}
	if _, err := png.Decode(bytes.NewReader(client.bodies[0])); err != nil {
		t.Errorf("Expected PNG body: %v", err)
	}
}

func TestS3Publisher_Error(t *testing.T) {
	uploadErr := errors.New("access denied")
	publisher := NewS3PublisherWithClient(&mockS3{err: uploadErr}, "renders", "")

	_, err := publisher.Publish(context.Background(), "render.png", testImage(2, 2))
	if !errors.Is(err, uploadErr) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}

func TestS3Publisher_Key(t *testing.T) {
	if got := NewS3PublisherWithClient(nil, "b", "").Key("a.png"); got != "a.png" {
		t.Errorf("Expected bare key, got %s", got)
	}
	if got := NewS3PublisherWithClient(nil, "b", "x/").Key("a.png"); got != "x/a.png" {
		t.Errorf("Expected prefixed key, got %s", got)
	}
}

func TestNewS3Publisher_RequiresBucket(t *testing.T) {
	if _, err := NewS3Publisher(S3Config{Region: "us-east-1"}); err == nil {
		t.Error("Expected error without bucket")
	}
}
