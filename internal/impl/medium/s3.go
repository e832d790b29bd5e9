package medium

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "s3",
			Args: docs.ArgSpecs{
				{Dest: "s3_bucket", Type: docs.FieldString, Description: "destination bucket", Required: true},
				{Dest: "s3_prefix", Type: docs.FieldString, Description: "key prefix each batch object is written under", Default: "avalon/"},
			},
		},
		AutoSelectFlag: "s3_bucket",
		Constructor:    newS3,
	}))
}

type s3Medium struct {
	client *s3.Client
	bucket string
	prefix string
	seq    int64
}

func newS3(attrs map[string]any) (medium.Type, error) {
	bucket, _ := attrs["bucket"].(string)
	prefix, _ := attrs["prefix"].(string)
	if prefix == "" {
		prefix = "avalon/"
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, err
	}
	return &s3Medium{client: s3.NewFromConfig(cfg), bucket: bucket, prefix: prefix}, nil
}

func (m *s3Medium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	seq := atomic.AddInt64(&m.seq, 1)
	key := fmt.Sprintf("%sbatch-%012d", m.prefix, seq)
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(b.Payload),
	})
	if err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *s3Medium) Close(ctx context.Context) error {
	return nil
}
