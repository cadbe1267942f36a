package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNoInput = errors.New("no input provided")

// Paths asks for the source media file and the section config, one line each.
func Paths(in io.Reader, out io.Writer) (inputPath, configPath string, err error) {
	reader := bufio.NewReader(in)

	inputPath, err = ask(reader, out, "Drag video file here: ")
	if err != nil {
		return "", "", err
	}
	configPath, err = ask(reader, out, "Drag config file here: ")
	if err != nil {
		return "", "", err
	}
	return inputPath, configPath, nil
}

func ask(reader *bufio.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	path := CleanDroppedPath(line)
	if path == "" {
		return "", ErrNoInput
	}
	return path, nil
}

// CleanDroppedPath trims whitespace and unescapes the "\ " sequences
// terminals insert when a file is dragged onto them.
func CleanDroppedPath(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `\ `, " ")
}
