package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// PageSnapshot writes a single-page A4 PDF containing the rendered dashboard
// text. The browser build rasterized the page into an image and embedded it;
// a terminal has no canvas, so the snapshot is the rendered text itself.
// The contract is the same: lines in, a self-contained PDF out.
func PageSnapshot(w io.Writer, title string, lines []string) error {
	var content bytes.Buffer
	content.WriteString("BT\n/F1 14 Tf\n18 TL\n50 800 Td\n")
	fmt.Fprintf(&content, "(%s) Tj\nT*\n", escapeText(title))
	content.WriteString("/F1 10 Tf\n13 TL\n")
	for _, line := range lines {
		fmt.Fprintf(&content, "(%s) Tj\nT*\n", escapeText(line))
	}
	content.WriteString("ET\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	_, err := w.Write(buf.Bytes())
	return err
}

// escapeText escapes the characters that delimit PDF string literals.
func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(s)
}
