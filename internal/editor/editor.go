// Package editor opens records in the user's $EDITOR for the
// non-interactive write command.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Document renders a title and body as the markdown file handed to the
// editor. The title becomes a level-one heading on the first line.
func Document(title, content string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(content)
	return b.String()
}

// Split is the inverse of Document. Text without a leading heading is
// all content.
func Split(doc string) (title, content string) {
	doc = strings.TrimLeft(doc, "\n")
	first, rest, _ := strings.Cut(doc, "\n")
	if !strings.HasPrefix(first, "# ") && first != "#" {
		return "", strings.TrimSpace(doc)
	}
	title = strings.TrimSpace(strings.TrimPrefix(first, "#"))
	return title, strings.TrimSpace(rest)
}

// EditRecord opens title and content in editorCmd and returns the edited
// pair. changed is false when the file came back empty or untouched.
func EditRecord(editorCmd, title, content string) (string, string, bool, error) {
	doc, changed, err := Edit(editorCmd, Document(title, content))
	if err != nil || !changed {
		return title, content, false, err
	}
	t, c := Split(doc)
	return t, c, true, nil
}

// Edit opens the given content in an editor and returns the edited content.
// If the user saves unchanged content or an empty file, it returns the original
// content and changed=false.
func Edit(editorCmd string, initialContent string) (content string, changed bool, err error) {
	tmp, err := os.CreateTemp("", "mindary-*.md")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(initialContent); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}
	tmp.Close()

	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return "", false, fmt.Errorf("empty editor command")
	}

	cmdArgs := append(parts[1:], tmpName)
	cmd := exec.Command(parts[0], cmdArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(tmpName)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}

	result := string(data)
	if strings.TrimSpace(result) == "" {
		return initialContent, false, nil
	}
	if strings.TrimSpace(result) == strings.TrimSpace(initialContent) {
		return initialContent, false, nil
	}
	return result, true, nil
}
