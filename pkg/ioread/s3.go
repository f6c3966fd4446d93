package ioread

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// GetObjectAPI is the slice of the S3 client used by S3Object.
// *s3.Client satisfies it; tests supply fakes.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Object streams an S3 object's body as a Resource.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	obj := ioread.NewS3Object(ctx, s3.NewFromConfig(cfg), "my-bucket", "logs/today")
//	sig := ioread.ReadToEnd(obj, scheduler)
//	sig.OnDisposed(obj.Close)
type S3Object struct {
	ctx    context.Context
	api    GetObjectAPI
	bucket string
	key    string

	// body is the open object stream, nil until the first read.
	body io.ReadCloser

	// file folds the body into chunked reads once open.
	file *File
}

// NewS3Object returns a Resource reading s3://bucket/key.
// The object is opened lazily on the first ReadChunk, using ctx.
func NewS3Object(ctx context.Context, api GetObjectAPI, bucket, key string) *S3Object {
	return &S3Object{ctx: ctx, api: api, bucket: bucket, key: key}
}

// ReadChunk reads at most maxBytes of the object body.
func (o *S3Object) ReadChunk(maxBytes int) ([]byte, error) {
	if o.file == nil {
		out, err := o.api.GetObject(o.ctx, &s3.GetObjectInput{
			Bucket: aws.String(o.bucket),
			Key:    aws.String(o.key),
		})
		if err != nil {
			return nil, err
		}
		o.body = out.Body
		o.file = NewReader(o.String(), out.Body)
	}
	return o.file.ReadChunk(maxBytes)
}

// Close releases the object body, if open.
func (o *S3Object) Close() {
	if o.body != nil {
		o.body.Close()
		o.body = nil
	}
}

// String returns the object's s3:// label.
func (o *S3Object) String() string {
	return fmt.Sprintf("s3://%s/%s", o.bucket, o.key)
}
