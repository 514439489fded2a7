package logfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/entity"
	"github.com/user/threat-log-analyzer/internal/repository"
)

// recordPattern matches `<ip> ... [<timestamp>] "<METHOD> <path> HTTP/<ver>" <status>`
// at the start of a line. Anything after the status is ignored.
var recordPattern = regexp.MustCompile(`^(?P<ip>\d+\.\d+\.\d+\.\d+).*?\[(?P<timestamp>.*?)\] "(?P<method>\w+) .*? HTTP/.*?" (?P<status>\d+)`)

var (
	ipIndex        = recordPattern.SubexpIndex("ip")
	timestampIndex = recordPattern.SubexpIndex("timestamp")
	methodIndex    = recordPattern.SubexpIndex("method")
	statusIndex    = recordPattern.SubexpIndex("status")
)

// ReaderImpl provides a concrete implementation for the LogRepository interface
// backed by a local file.
type ReaderImpl struct {
	path   string
	logger *zap.Logger
}

// NewReader creates a reader for the file at path.
func NewReader(path string, logger *zap.Logger) *ReaderImpl {
	return &ReaderImpl{path: path, logger: logger}
}

// ReadRecords opens the file and parses every matching line in order.
func (r *ReaderImpl) ReadRecords(ctx context.Context) ([]entity.LogRecord, error) {
	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", repository.ErrLogNotFound, r.path)
		}
		return nil, fmt.Errorf("failed to open log file %s: %w", r.path, err)
	}
	defer file.Close()

	records, err := Parse(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file %s: %w", r.path, err)
	}

	r.logger.Info("log records read", zap.String("path", r.path), zap.Int("records", len(records)))
	return records, nil
}

// Parse extracts one record per matching line of in, preserving order.
// Lines of any length are accepted.
func Parse(ctx context.Context, in io.Reader) ([]entity.LogRecord, error) {
	br := bufio.NewReader(in)

	records := make([]entity.LogRecord, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if record, ok := ParseLine(strings.TrimRight(line, "\r\n")); ok {
				records = append(records, record)
			}
		}
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ParseLine applies the record pattern to a single line.
func ParseLine(line string) (entity.LogRecord, bool) {
	m := recordPattern.FindStringSubmatch(line)
	if m == nil {
		return entity.LogRecord{}, false
	}
	return entity.LogRecord{
		IP:        m[ipIndex],
		Timestamp: m[timestampIndex],
		Method:    m[methodIndex],
		Status:    m[statusIndex],
	}, true
}
