package sink

import (
	"io"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/meta-reporting-tap/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Message é o envelope singer escrito na saída, um JSON por linha
type Message struct {
	Type          string              `json:"type"`
	Stream        string              `json:"stream,omitempty"`
	Record        domain.OutputRecord `json:"record,omitempty"`
	TimeExtracted time.Time           `json:"time_extracted,omitempty"`
}

// SingerWriter emite registros como mensagens singer RECORD em um io.Writer
// (normalmente stdout). Os workers escrevem concorrentemente, então cada Push
// é serializado por mutex; linhas de lotes diferentes podem se intercalar,
// mas nunca bytes de uma mesma linha.
type SingerWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewSingerWriter(out io.Writer) *SingerWriter {
	return &SingerWriter{out: out}
}

func (w *SingerWriter) Push(stream string, records []domain.OutputRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	encoder := json.NewEncoder(w.out)
	now := time.Now().UTC()

	for _, record := range records {
		message := Message{
			Type:          "RECORD",
			Stream:        stream,
			Record:        record,
			TimeExtracted: now,
		}
		if err := encoder.Encode(message); err != nil {
			return err
		}
	}

	return nil
}
