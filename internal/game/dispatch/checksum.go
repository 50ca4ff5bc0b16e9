package dispatch

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Checksum is a digest of a journal's deterministic content.
type Checksum struct {
	Hash   string
	Frames int
}

// Checksum hashes every frame in order. Message and entity identifiers are
// random per run and are not part of a frame, so two runs from the same
// initial board and queue produce the same hash.
func (j *Journal) Checksum() (*Checksum, error) {
	hash := sha256.New()
	if _, err := hash.Write(j.deterministicRepresentation()); err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}
	return &Checksum{
		Hash:   hex.EncodeToString(hash.Sum(nil)),
		Frames: len(j.Frames),
	}, nil
}

func (j *Journal) deterministicRepresentation() []byte {
	var buf bytes.Buffer
	for i, frame := range j.Frames {
		fmt.Fprintf(&buf, "FRAME:%d|%d|%d\n", i, frame.Step, frame.Pending)
		r := frame.Retired
		fmt.Fprintf(&buf, "MSG:%s|%d|%d|%d|%s\n", r.Type, r.Priority, r.Sender, r.Responders, r.Summary)
		for _, e := range frame.Entities {
			fmt.Fprintf(&buf, "ENTITY:%s|%s|%d|%d|%d|%t|%s|%d\n",
				e.Kind, e.Name, e.Player, e.Position, e.Usages, e.Active, e.DamageElement, e.DamageValue)
		}
	}
	return buf.Bytes()
}
