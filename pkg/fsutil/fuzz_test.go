package fsutil_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/yaklabco/wikiparse/pkg/fsutil"
)

func FuzzWriteAtomicReadFile(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("== Heading ==\n"))
	f.Add([]byte("line\r\nwith crlf\r\n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "page.wiki")
		ctx := context.Background()

		if err := fsutil.WriteAtomic(ctx, path, content, 0); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("content mismatch: got %d bytes, want %d", len(got), len(content))
		}
		if info.Key() != fsutil.HashContent(content) {
			t.Errorf("hash mismatch")
		}
	})
}
