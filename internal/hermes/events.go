package hermes

import (
	"encoding/json"
	"log/slog"
)

const (
	SubjectSampleAnalyzed  = "letterforge.sample.analyzed"
	SubjectLetterGenerated = "letterforge.letter.generated"
)

// SampleAnalyzed is published once a sample's sentences are merged into
// its owner's category store.
type SampleAnalyzed struct {
	SampleID  string `json:"sample_id"`
	Owner     string `json:"owner"`
	Sentences int    `json:"sentences"`
}

// LetterGenerated is published for every stored letter. Degraded marks
// letters produced without the full pipeline.
type LetterGenerated struct {
	LetterID string `json:"letter_id"`
	Owner    string `json:"owner"`
	Degraded bool   `json:"degraded"`
}

// Event is a payload published on its own subject.
type Event interface {
	Subject() string
}

func (SampleAnalyzed) Subject() string  { return SubjectSampleAnalyzed }
func (LetterGenerated) Subject() string { return SubjectLetterGenerated }

type Publisher interface {
	Publish(ev Event) error
}

// Emit publishes ev when pub is set. Failures are logged only.
func Emit(pub Publisher, logger *slog.Logger, ev Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ev); err != nil {
		logger.Warn("event publish failed", "subject", ev.Subject(), "error", err)
	}
}

// decode unmarshals one message into T for fn. Malformed payloads are
// logged and dropped.
func decode[T Event](logger *slog.Logger, subject string, data []byte, fn func(T)) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		logger.Warn("dropping malformed event", "subject", subject, "error", err)
		return
	}
	fn(ev)
}
