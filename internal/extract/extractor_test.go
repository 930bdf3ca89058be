package extract

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// stubRunner scripts the external binaries. Each call is recorded so tests
// can assert on the exact command lines.
type stubRunner struct {
	pdftotextOut string
	pdftotextErr error
	tesseractOut string
	tesseractErr error
	pdftoppmErr  error
	renderPages  int // pngs written under the pdftoppm prefix

	calls [][]string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	switch name {
	case "pdftotext":
		return []byte(s.pdftotextOut), nil, s.pdftotextErr
	case "pdftoppm":
		if s.pdftoppmErr != nil {
			return nil, []byte("Syntax Error"), s.pdftoppmErr
		}
		prefix := args[len(args)-1]
		for i := 1; i <= s.renderPages; i++ {
			if err := os.WriteFile(prefix+"-"+string(rune('0'+i))+".png", []byte("png"), 0o644); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	case "tesseract":
		return []byte(s.tesseractOut), nil, s.tesseractErr
	}
	return nil, nil, errors.New("unexpected command: " + name)
}

func (s *stubRunner) commandNames() []string {
	var names []string
	for _, c := range s.calls {
		names = append(names, c[0])
	}
	return names
}

func newTestExtractor(t *testing.T, stub *stubRunner) *Extractor {
	t.Helper()
	e := NewExtractor(Config{WorkDir: t.TempDir()}, nil)
	e.runner = stub
	return e
}

func TestExtract_PDFTextLayer(t *testing.T) {
	t.Parallel()

	stub := &stubRunner{pdftotextOut: "PEDIDO DE VENDA 123\fPágina 2 do pedido"}
	e := newTestExtractor(t, stub)

	res, err := e.Extract(context.Background(), "/docs/pedido.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Method != "pdf-text" {
		t.Fatalf("method = %q, want pdf-text", res.Method)
	}
	if res.Pages != 2 {
		t.Fatalf("pages = %d, want 2 (form-feed separated)", res.Pages)
	}
	if !strings.Contains(res.Text, "PEDIDO DE VENDA 123") {
		t.Fatalf("text = %q", res.Text)
	}
	if got := stub.commandNames(); len(got) != 1 || got[0] != "pdftotext" {
		t.Fatalf("commands = %v, want a single pdftotext run", got)
	}
}

func TestExtract_PDFFallsBackToOCR(t *testing.T) {
	t.Parallel()

	// text layer shorter than the usable-text floor triggers rasterize+OCR
	stub := &stubRunner{
		pdftotextOut: "  \n ",
		renderPages:  2,
		tesseractOut: "PEDIDO 456",
	}
	e := newTestExtractor(t, stub)

	res, err := e.Extract(context.Background(), "/docs/escaneado.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Method != "pdf-ocr" {
		t.Fatalf("method = %q, want pdf-ocr", res.Method)
	}
	if res.Pages != 2 {
		t.Fatalf("pages = %d, want 2 rendered pages", res.Pages)
	}
	if !strings.Contains(res.Text, "PEDIDO 456") {
		t.Fatalf("text = %q", res.Text)
	}

	names := stub.commandNames()
	want := []string{"pdftotext", "pdftoppm", "tesseract", "tesseract"}
	if len(names) != len(want) {
		t.Fatalf("commands = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("commands = %v, want %v", names, want)
		}
	}
}

func TestExtract_PDFBothPathsFail(t *testing.T) {
	t.Parallel()

	stub := &stubRunner{
		pdftotextErr: errors.New("exit status 1"),
		pdftoppmErr:  errors.New("exit status 1"),
	}
	e := newTestExtractor(t, stub)

	if _, err := e.Extract(context.Background(), "/docs/quebrado.pdf"); err == nil {
		t.Fatal("expected error when both text layer and OCR fail")
	}
}

func TestExtract_ImageOCRUsesConfiguredLanguage(t *testing.T) {
	t.Parallel()

	stub := &stubRunner{tesseractOut: "NOTA 789\n\n\n\nITEM A    10   2,50"}
	e := newTestExtractor(t, stub)

	// path does not exist: preprocessing degrades to OCR on the original
	res, err := e.Extract(context.Background(), "/docs/foto.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Method != "image-ocr" || res.Pages != 1 {
		t.Fatalf("result = %+v", res)
	}
	if strings.Contains(res.Text, "\n\n\n") {
		t.Fatalf("blank lines not collapsed: %q", res.Text)
	}

	var tessCall []string
	for _, c := range stub.calls {
		if c[0] == "tesseract" {
			tessCall = c
		}
	}
	if tessCall == nil {
		t.Fatalf("tesseract never ran: %v", stub.calls)
	}
	joined := strings.Join(tessCall, " ")
	if !strings.Contains(joined, "stdout -l por") {
		t.Fatalf("tesseract args = %v, want stdout -l por", tessCall)
	}
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, &stubRunner{})
	if _, err := e.Extract(context.Background(), "/docs/planilha.xlsx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"tabs and runs", "col1\t\tcol2   col3", "col1 col2 col3"},
		{"blank line runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"trailing spaces", "linha   \noutra  ", "linha\noutra"},
		{"empty", "", ""},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(c.in); got != c.want {
				t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
