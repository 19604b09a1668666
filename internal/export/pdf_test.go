package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSnapshot_Structure(t *testing.T) {
	var buf bytes.Buffer
	err := PageSnapshot(&buf, "Nomad Tales Dashboard", []string{"Articles: 3", "Categories: 2"})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%PDF-1.4\n"))
	assert.True(t, strings.HasSuffix(out, "%%EOF\n"))
	assert.Contains(t, out, "/Type /Catalog")
	assert.Contains(t, out, "/MediaBox [0 0 595 842]")
	assert.Contains(t, out, "/BaseFont /Helvetica")
	assert.Contains(t, out, "(Nomad Tales Dashboard) Tj")
	assert.Contains(t, out, "(Articles: 3) Tj")
	assert.Contains(t, out, "(Categories: 2) Tj")
	assert.Contains(t, out, "startxref")
}

func TestPageSnapshot_XrefOffsetsPointAtObjects(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PageSnapshot(&buf, "t", []string{"one line"}))

	out := buf.String()
	xrefStart := strings.Index(out, "xref\n")
	require.Positive(t, xrefStart)

	lines := strings.Split(out[xrefStart:], "\n")
	// lines[1] is "0 6", lines[2] the free entry, then one entry per object
	for i, line := range lines[3:8] {
		var offset, gen int
		_, err := fmt.Sscanf(line, "%d %d n", &offset, &gen)
		require.NoError(t, err, "entry %d", i)
		header := fmt.Sprintf("%d 0 obj", i+1)
		assert.True(t, strings.HasPrefix(out[offset:], header), "entry %d points at %q", i, header)
	}
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, `a \(b\) \\c`, escapeText(`a (b) \c`))
}
