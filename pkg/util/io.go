package util

import (
	"bufio"
	"strings"
)

// ReadLine. reads one full line from br without the trailing newline, lines longer than the reader buffer included.
func ReadLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", err
		}
		sb.Write(chunk)
		if !isPrefix {
			break
		}
	}
	return sb.String(), nil
}

func Fields(line string) []string {
	return strings.Fields(line)
}
