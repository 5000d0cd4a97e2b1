package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"doubtsolver/internal/views/theme"
)

func TestLayoutRendersProvidedContent(t *testing.T) {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<main>content</main>"))
		return err
	})

	var buf bytes.Buffer
	err := Layout("Doubts & Answers", theme.Resolve(true), content).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Doubts &amp; Answers</title>") {
		t.Fatalf("expected escaped document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "<main>content</main>") {
		t.Fatalf("expected content in output: %s", out)
	}
	if !strings.Contains(out, `class="dark"`) {
		t.Fatalf("expected dark class on the document: %s", out)
	}
}

func TestContainerClassReflectsTheme(t *testing.T) {
	if containerClass(theme.Resolve(true)) == containerClass(theme.Resolve(false)) {
		t.Fatal("expected different container class depending on theme")
	}
}
