package s3

import (
	"bytes"
	"context"
	"crypto/md5" // #nosec G501 -- S3 ETags are MD5 digests
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// NewMockForTests returns a *Store backed by an in-memory fake HTTP transport
// serving objects from bucket. Only HEAD and GET object requests are handled.
func NewMockForTests(bucket string, objects map[string][]byte) *Store {
	rt := newMockRoundTripper(bucket, objects)
	s, err := New(context.Background(), Config{
		Region:          "us-east-1",
		Bucket:          bucket,
		Endpoint:        "https://mock.s3.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: rt},
	})
	if err != nil {
		panic(err)
	}
	return s
}

type mockRoundTripper struct {
	mu       sync.Mutex
	bucket   string
	objects  map[string][]byte
	modified time.Time
	requests int
}

func newMockRoundTripper(bucket string, objects map[string][]byte) *mockRoundTripper {
	cp := make(map[string][]byte, len(objects))
	for k, v := range objects {
		cp[k] = append([]byte(nil), v...)
	}
	return &mockRoundTripper{bucket: bucket, objects: cp, modified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	if req.Body != nil {
		_ = req.Body.Close()
	}
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] != m.bucket {
		return respond(http.StatusNotFound, nil, nil), nil
	}
	body, ok := m.objects[parts[1]]
	switch req.Method {
	case http.MethodHead, http.MethodGet:
		if !ok {
			return respond(http.StatusNotFound, nil, nil), nil
		}
		sum := md5.Sum(body) // #nosec G401
		header := http.Header{
			"Content-Length": {strconv.Itoa(len(body))},
			"Content-Type":   {"text/csv"},
			"ETag":           {"\"" + hex.EncodeToString(sum[:]) + "\""},
			"Last-Modified":  {m.modified.Format(http.TimeFormat)},
		}
		if req.Method == http.MethodHead {
			return respond(http.StatusOK, header, nil), nil
		}
		return respond(http.StatusOK, header, body), nil
	}
	return respond(http.StatusNotImplemented, nil, nil), nil
}

func respond(status int, header http.Header, body []byte) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode:    status,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}
