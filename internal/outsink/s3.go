/*
Copyright (C) 2026  The Proboscis Authors

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package outsink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Sink buffers every write and uploads once on Close, mirroring the
// reference storage backend's buffer-then-PutObject approach since S3
// has no append.
type s3Sink struct {
	bucket string
	key    string
	buf    bytes.Buffer
}

func newS3Sink(uri string) (*s3Sink, error) {
	rest := strings.TrimPrefix(uri, "s3://")
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return nil, fmt.Errorf("outsink: invalid s3 uri %q, want s3://bucket/key", uri)
	}
	return &s3Sink{bucket: rest[:slash], key: rest[slash+1:]}, nil
}

func (s *s3Sink) Write(p []byte) (int, error) { return s.buf.Write(p) }

func (s *s3Sink) Close() error {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("outsink: load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
		Body:   bytes.NewReader(s.buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("outsink: upload s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}
