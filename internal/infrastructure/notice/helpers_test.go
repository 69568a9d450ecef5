package notice

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	domain "github.com/claims/backend/internal/domain/notice"
	"github.com/stretchr/testify/require"
)

// writeTestDocx writes a minimal docx container whose document part wraps
// bodyText in a single paragraph
func writeTestDocx(t *testing.T, path, bodyText string) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	sb.WriteString(`<w:body><w:p><w:r><w:t>`)
	sb.WriteString(bodyText)
	sb.WriteString(`</w:t></w:r></w:p></w:body></w:document>`)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	ct, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	require.NoError(t, err)

	doc, err := w.Create(documentPart)
	require.NoError(t, err)
	_, err = doc.Write([]byte(sb.String()))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// allFieldsBody returns body text referencing every required merge field
func allFieldsBody(t *testing.T) string {
	t.Helper()
	var sb strings.Builder
	for _, field := range domain.RequiredMergeFields() {
		sb.WriteString("{" + field + "} ")
	}
	return sb.String()
}

// docText reads back the body text of a docx file
func docText(t *testing.T, path string) string {
	t.Helper()
	raw, err := readDocumentXML(path)
	require.NoError(t, err)
	text, err := extractText(raw)
	require.NoError(t, err)
	return text
}

// writeTestPDF writes a one-page PDF with an AcroForm text field per name.
// The cross-reference table is computed from the assembled byte offsets.
func writeTestPDF(t *testing.T, path string, fieldNames ...string) {
	t.Helper()

	fieldRefs := make([]string, len(fieldNames))
	for i := range fieldNames {
		fieldRefs[i] = fmt.Sprintf("%d 0 R", 5+i)
	}
	refs := strings.Join(fieldRefs, " ")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [" + refs + "]" +
			" /NeedAppearances true /DA (/Helv 10 Tf 0 g)" +
			" /DR << /Font << /Helv 4 0 R >> >> >> >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Annots [" + refs + "]" +
			" /Resources << /Font << /Helv 4 0 R >> >> >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for i, name := range fieldNames {
		y := 720 - 24*i
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Annot /Subtype /Widget /FT /Tx /T (%s) /Rect [72 %d 540 %d] /F 4 /DA (/Helv 10 Tf 0 g) >>",
			name, y, y+18))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")
	offsets := make([]int, len(objects)+1)
	for i, body := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}
