package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/meta-reporting-tap/infrastructure/database/postgres"
	"github.com/vfg2006/meta-reporting-tap/internal/domain"
)

const reportRecordsTable = "report_records"

// ReportRecordRepository persiste lotes de registros emitidos, um registro
// por linha com o payload completo em jsonb
type ReportRecordRepository interface {
	SaveBatch(stream string, records []domain.OutputRecord) error
	DeleteOlderThan(days int) (int64, error)
}

type reportRecordRepository struct {
	conn postgres.Queryer
}

func NewReportRecordRepository(conn postgres.Queryer) ReportRecordRepository {
	return &reportRecordRepository{
		conn: conn,
	}
}

func (r *reportRecordRepository) SaveBatch(stream string, records []domain.OutputRecord) error {
	if len(records) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(reportRecordsTable).
		Columns("stream", "report_date", "payload", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	now := time.Now()
	for _, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("erro ao serializar registro para JSON: %w", err)
		}

		reportDate, _ := record["report_date"].(string)
		builder = builder.Values(stream, reportDate, payload, now)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao inserir registros de relatório: %w", err)
	}

	return nil
}

func (r *reportRecordRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete(reportRecordsTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover registros antigos: %w", err)
	}

	return result.RowsAffected()
}
