package validate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/templateio"
)

func init() {
	color.NoColor = true
}

func writeTemplate(t *testing.T, dir string, valid bool) string {
	t.Helper()
	path := filepath.Join(dir, "card.json")
	data := []byte(`{"version":7}`)
	if valid {
		var err error
		data, err = templateio.Marshal(templateio.Export(model.NewDocument(), templateio.ExportOptions{}))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestValidateOnce(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer

	v := Validate{Path: writeTemplate(t, dir, true), Out: &buf}
	if err := v.Do(context.Background()); err != nil {
		t.Fatalf("valid template: %v", err)
	}

	v.Path = writeTemplate(t, dir, false)
	err := v.Do(context.Background())
	var invalid *ErrInvalid
	if !errors.As(err, &invalid) || len(invalid.Issues) == 0 {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if !strings.Contains(buf.String(), "$.version") {
		t.Fatalf("expected the version issue in\n%s", buf.String())
	}
}

func TestValidateJSON(t *testing.T) {
	var buf bytes.Buffer
	v := Validate{Path: writeTemplate(t, t.TempDir(), true), Out: &buf, JSON: true}
	if err := v.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), `"ok": true`) {
		t.Fatalf("unexpected output %s", buf.String())
	}
}

type syncBuffer struct {
	ch chan string
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.ch <- string(p)
	return len(p), nil
}

func TestValidateWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, true)
	out := &syncBuffer{ch: make(chan string, 64)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		v := Validate{Path: path, Out: out, Watch: true}
		done <- v.Do(ctx)
	}()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case s := <-out.ch:
				if strings.Contains(s, want) {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q", want)
			}
		}
	}
	waitFor("valid template")

	time.Sleep(100 * time.Millisecond)
	writeTemplate(t, dir, false)
	waitFor("issues")

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
