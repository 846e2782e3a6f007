package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Field is one "name: value" cell of an export line.
type Field struct {
	Name  string
	Value string
}

// Line renders one record as "name: value | name: value".
func Line(fields ...Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Name+": "+f.Value)
	}
	return strings.Join(parts, " | ")
}

// Render builds the full export document: a record-count header followed by
// one line per record. An empty set still produces a well-formed document.
func Render(lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total records: %d\n", len(lines))
	if len(lines) == 0 {
		b.WriteString("No records in range.\n")
		return b.String()
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteAtomic writes content to dir/filename via a temp file and rename, so
// a concurrent reader never observes a partial file.
func WriteAtomic(dir, filename, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, filename+".tmp-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}

	final := filepath.Join(dir, filename)
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	return final, nil
}

// WantsDownload reports whether the client asked for a file attachment,
// either explicitly (?download=1) or by accepting text/html (browser hit).
func WantsDownload(c *fiber.Ctx) bool {
	switch strings.ToLower(c.Query("download")) {
	case "1", "true":
		return true
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), "text/html")
}

// Send writes the export file atomically and answers either as a plain-text
// attachment (file removed after a successful send) or as inline JSON.
func Send(c *fiber.Ctx, dir, filename, content string, count int) error {
	path, err := WriteAtomic(dir, filename, content)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to write export: "+err.Error())
	}

	if WantsDownload(c) {
		c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		if err := c.SendString(content); err != nil {
			return err
		}
		// Best-effort cleanup once the response body is handed off.
		os.Remove(path)
		return nil
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"file":    path,
		"count":   count,
		"content": content,
	})
}
