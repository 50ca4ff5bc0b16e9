package dispatch

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gisim/gisim-go/internal/game/rules"
)

const journalVersion = 1

// MessageRecord is the identifier-free view of a retired message
type MessageRecord struct {
	Type       rules.MessageType
	Priority   rules.Priority
	Sender     rules.PlayerID
	Responders int
	Summary    string
}

func recordMessage(msg rules.Message) MessageRecord {
	h := msg.Header()
	return MessageRecord{
		Type:       msg.Type(),
		Priority:   h.Priority(),
		Sender:     h.Sender,
		Responders: h.ResponseCount(),
		Summary:    msg.Summary(),
	}
}

// Frame is the board state right after a message was retired
type Frame struct {
	Step     int
	Retired  MessageRecord
	Pending  int
	Entities []rules.Snapshot
}

// Journal records one frame per retired message so a run can be stepped
// through or compared with another run.
type Journal struct {
	RunID        string
	Frames       []*Frame
	CurrentIndex int
}

// NewJournal creates an empty journal
func NewJournal(runID string) *Journal {
	return &Journal{
		RunID:  runID,
		Frames: make([]*Frame, 0),
	}
}

// Record appends a frame
func (j *Journal) Record(frame *Frame) {
	j.Frames = append(j.Frames, frame)
}

// Start resets navigation to the first frame
func (j *Journal) Start() {
	j.CurrentIndex = 0
}

// Next returns the frame at the cursor and advances it
func (j *Journal) Next() *Frame {
	if j.CurrentIndex < len(j.Frames) {
		frame := j.Frames[j.CurrentIndex]
		j.CurrentIndex++
		return frame
	}
	return nil
}

// Previous moves the cursor back and returns that frame
func (j *Journal) Previous() *Frame {
	if j.CurrentIndex > 0 {
		j.CurrentIndex--
		return j.Frames[j.CurrentIndex]
	}
	return nil
}

// Size returns the number of recorded frames
func (j *Journal) Size() int {
	return len(j.Frames)
}

// FrameAt returns the frame at index, or nil
func (j *Journal) FrameAt(index int) *Frame {
	if index >= 0 && index < len(j.Frames) {
		return j.Frames[index]
	}
	return nil
}

type journalMetadata struct {
	RunID      string
	Timestamp  time.Time
	Version    int
	FrameCount int
}

// Filename returns the file name SaveToFile writes to
func (j *Journal) Filename() string {
	return fmt.Sprintf("%s.journal", j.RunID)
}

// SaveToFile writes the journal as gzipped gob into directory and returns the path
func (j *Journal) SaveToFile(directory string) (string, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(directory, j.Filename())
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := gob.NewEncoder(gzipWriter)

	metadata := journalMetadata{
		RunID:      j.RunID,
		Timestamp:  time.Now(),
		Version:    journalVersion,
		FrameCount: len(j.Frames),
	}
	if err := encoder.Encode(&metadata); err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	for i, frame := range j.Frames {
		if err := encoder.Encode(frame); err != nil {
			return "", fmt.Errorf("failed to encode frame %d: %w", i, err)
		}
	}
	if err := gzipWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to flush journal: %w", err)
	}
	return path, nil
}

// LoadJournal reads a journal written by SaveToFile
func LoadJournal(path string) (*Journal, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)

	var metadata journalMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if metadata.Version != journalVersion {
		return nil, fmt.Errorf("unsupported journal version: %d", metadata.Version)
	}

	journal := NewJournal(metadata.RunID)
	for i := 0; i < metadata.FrameCount; i++ {
		var frame Frame
		if err := decoder.Decode(&frame); err != nil {
			return nil, fmt.Errorf("failed to decode frame %d: %w", i, err)
		}
		journal.Frames = append(journal.Frames, &frame)
	}
	return journal, nil
}
