package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/nulifyer/slnutf8/logger"

	"golang.org/x/text/encoding/unicode"
)

type Outcome int

const (
	OutcomeConverted Outcome = iota
	OutcomeSkipped
)

// ConvertFile rewrites path in place as UTF-8 with a byte order mark. Files
// no codec can decode are reported and left untouched. The rewrite is not
// atomic: an interrupted write can leave the file truncated.
func ConvertFile(cfg *Config, path string, rep Reporter) (Outcome, error) {
	info, err := os.Stat(path)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("stat %s: %w", path, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("read %s: %w", path, err)
	}

	text, enc, ok := cfg.Decoder.Decode(raw)
	if !ok {
		rep.Skipped(path)
		return OutcomeSkipped, nil
	}
	logger.Trace("%s decoded as %s (%d bytes)", path, enc, len(raw))

	out, err := EncodeOutput(text)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := writeFileRetry(path, out, info.Mode().Perm()); err != nil {
		return OutcomeSkipped, fmt.Errorf("write %s: %w", path, err)
	}

	rep.Converted(cfg.RelPath(path), enc, OutputEncoding)
	return OutcomeConverted, nil
}

// EncodeOutput encodes text as UTF-8 led by a byte order mark. The mark is
// present even for empty text.
func EncodeOutput(text string) ([]byte, error) {
	out, err := unicode.UTF8BOM.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(out, utf8BOM) {
		out = append(append([]byte{}, utf8BOM...), out...)
	}
	return out, nil
}

// writeFileRetry wraps os.WriteFile with retries to handle transient file
// locks on Windows (antivirus, IDE file watchers, indexing services).
func writeFileRetry(path string, data []byte, perm os.FileMode) error {
	const maxAttempts = 5
	var err error
	for i := 0; i < maxAttempts; i++ {
		err = os.WriteFile(path, data, perm)
		if err == nil {
			return nil
		}
		if i < maxAttempts-1 {
			logger.Debug("write retry %d/%d for %s: %v", i+1, maxAttempts, path, err)
			time.Sleep(time.Duration(50*(i+1)) * time.Millisecond)
		}
	}
	return err
}
