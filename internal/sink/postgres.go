package sink

import (
	"github.com/vfg2006/meta-reporting-tap/infrastructure/repository"
	"github.com/vfg2006/meta-reporting-tap/internal/domain"
)

// PostgresEmitter persiste os lotes emitidos em banco em vez de escrevê-los
// na saída padrão. A serialização de escritas concorrentes fica a cargo do
// driver e do banco.
type PostgresEmitter struct {
	repo repository.ReportRecordRepository
}

func NewPostgresEmitter(repo repository.ReportRecordRepository) *PostgresEmitter {
	return &PostgresEmitter{repo: repo}
}

func (e *PostgresEmitter) Push(stream string, records []domain.OutputRecord) error {
	return e.repo.SaveBatch(stream, records)
}
