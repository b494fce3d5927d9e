package filesystem

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
)

// charsetSample bounds how much of a file is read for charset detection.
const charsetSample = 4096

// Info returns metadata for path. MIME type and charset are only filled in
// for regular files.
func (p *Provider) Info(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	info := &FileInfo{
		Size:        stat.Size(),
		IsDirectory: stat.IsDir(),
		IsReadonly:  stat.Mode().Perm()&0o222 == 0,
		Modified:    stat.ModTime(),
	}

	if !stat.Mode().IsRegular() {
		return info, nil
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		p.logger.Debug("MIME detection failed", zap.String("path", path), zap.Error(err))
		return info, nil
	}
	info.MimeType = mtype.String()

	if strings.HasPrefix(info.MimeType, "text/") {
		info.Charset = detectCharset(path)
	}
	return info, nil
}

// detectCharset guesses the encoding from the start of the file.
func detectCharset(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	sample, err := io.ReadAll(io.LimitReader(f, charsetSample))
	if err != nil || len(sample) == 0 {
		return ""
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil {
		return ""
	}
	return strings.ToLower(result.Charset)
}
