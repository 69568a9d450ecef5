package notice

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	domain "github.com/claims/backend/internal/domain/notice"
)

// Minimal OOXML container handling for the word-merge format. A .docx file
// is a zip archive; the body text lives in word/document.xml. Merge fields
// are written as {name} (a single surrounding space is tolerated) directly
// in the body text, so substitution operates on the document part and all
// other archive entries pass through untouched.

const documentPart = "word/document.xml"

// readDocumentXML returns the raw word/document.xml content of a docx file
func readDocumentXML(path string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("not a readable docx container: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", documentPart, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("docx container has no %s part", documentPart)
}

// extractText concatenates the character data of an XML document part,
// dropping all markup. Runs within a paragraph concatenate naturally.
func extractText(doc []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document xml: %w", err)
		}
		if cd, ok := tok.(xml.CharData); ok {
			sb.Write(cd)
		}
	}
	return sb.String(), nil
}

// fieldTokens returns the accepted token spellings for a merge field
func fieldTokens(name string) [2]string {
	return [2]string{"{" + name + "}", "{ " + name + " }"}
}

// containsFieldToken reports whether text references the merge field
func containsFieldToken(text, name string) bool {
	for _, tok := range fieldTokens(name) {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

// mergeDocx renders a word-merge template to outPath, substituting every
// known {field} token with its dictionary value. Tokens not present in the
// dictionary are left verbatim. The output is written atomically.
func mergeDocx(templatePath, outPath string, fields domain.FieldDictionary) error {
	r, err := zip.OpenReader(templatePath)
	if err != nil {
		return fmt.Errorf("not a readable docx container: %w", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	found := false
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Name, err)
		}

		if f.Name == documentPart {
			data = substituteTokens(data, fields)
			found = true
		}

		hdr := &zip.FileHeader{Name: f.Name, Method: f.Method}
		out, err := w.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	if !found {
		return fmt.Errorf("docx container has no %s part", documentPart)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize docx container: %w", err)
	}

	return writeFileAtomic(outPath, buf.Bytes(), 0o644)
}

// substituteTokens replaces both token spellings of every dictionary field
// with the XML-escaped value
func substituteTokens(doc []byte, fields domain.FieldDictionary) []byte {
	s := string(doc)
	for name, value := range fields {
		escaped := xmlEscape(value)
		for _, tok := range fieldTokens(name) {
			s = strings.ReplaceAll(s, tok, escaped)
		}
	}
	return []byte(s)
}

// xmlEscape escapes a merge value for insertion into document xml.
// Newlines in values (multi-line addresses) become line break elements.
func xmlEscape(value string) string {
	var sb strings.Builder
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("</w:t><w:br/><w:t>")
		}
		xml.EscapeText(&sb, []byte(line))
	}
	return sb.String()
}
