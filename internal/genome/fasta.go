package genome

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

var ErrEmptyFASTA = errors.New("fasta file contains no sequence")

// ReadFirstFASTA returns the first sequence in a FASTA file, uppercased with
// line breaks joined. A second header line ends the read.
func ReadFirstFASTA(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var seq strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if seq.Len() > 0 {
				break
			}
			continue
		}
		seq.WriteString(strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	if seq.Len() == 0 {
		return "", ErrEmptyFASTA
	}
	return seq.String(), nil
}
