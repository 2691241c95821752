package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/gridsense/config"
)

// csvLog appends records of one type to a CSV file, writing the header once.
type csvLog struct {
	file          *os.File
	headerWritten bool
}

func openCSV(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{file: f}, nil
}

func (l *csvLog) write(records any) error {
	if !l.headerWritten {
		if err := gocsv.Marshal(records, l.file); err != nil {
			return err
		}
		l.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, l.file)
}

// OutputManager writes per-frame and perf CSV logs plus a config snapshot.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir    string
	frames *csvLog
	perf   *csvLog
}

// NewOutputManager creates the output directory and its files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	frames, err := openCSV(dir, "frames.csv")
	if err != nil {
		return nil, err
	}
	perf, err := openCSV(dir, "perf.csv")
	if err != nil {
		frames.file.Close()
		return nil, err
	}
	return &OutputManager{dir: dir, frames: frames, perf: perf}, nil
}

// WriteConfig saves the configuration in effect as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFrame appends a frame record to frames.csv.
func (om *OutputManager) WriteFrame(stats FrameStats) error {
	if om == nil {
		return nil
	}
	if err := om.frames.write([]FrameStats{stats}); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.frames.file.Close(), om.perf.file.Close())
}
