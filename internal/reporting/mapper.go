package reporting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/meta-reporting-tap/internal/domain"
)

// MapRecord projeta um item bruto de insights em um registro tipado conforme
// o schema de destino. O registro resultante contém exatamente as chaves do
// schema (com default 0/"" para campos ausentes) mais as chaves derivadas de
// ações presentes no item.
//
// Erros de coerção de tipo e a ausência de date_start são fatais para a
// execução inteira: um registro malformado indica divergência de schema com o
// upstream e deve parar o pipeline em vez de produzir linhas corrompidas.
func MapRecord(item domain.RawInsightItem, schema domain.DestinationSchema, streamCfg StreamConfig) (domain.OutputRecord, error) {
	record := make(domain.OutputRecord, len(schema)+4)

	for key, fieldType := range schema {
		raw, ok := item[key]
		if !ok {
			record[key] = defaultForType(fieldType)
			continue
		}

		value, err := coerce(raw, fieldType)
		if err != nil {
			return nil, fmt.Errorf("campo %q: %w", key, err)
		}
		record[key] = value
	}

	// Contagens de ações suportadas pela stream. Tipos de ação duplicados
	// sobrescrevem o valor anterior: o último vence, sem soma.
	if _, ok := item["actions"]; ok {
		for _, action := range item.Actions("actions") {
			if !streamCfg.SupportedActions[action.ActionType] {
				continue
			}

			value, err := coerceToInt(action.Value)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", action.ActionType, err)
			}
			record[actionFieldName(action.ActionType)] = value
		}
	}

	if _, ok := item["unique_actions"]; ok {
		for _, action := range item.Actions("unique_actions") {
			if action.ActionType != "link_click" {
				continue
			}

			value, err := coerceToInt(action.Value)
			if err != nil {
				return nil, fmt.Errorf("unique_action %q: %w", action.ActionType, err)
			}
			record["unique_link_clicks"] = value
		}
	}

	if streamCfg.ExtractActionValues {
		if _, ok := item["action_values"]; ok {
			for _, action := range item.Actions("action_values") {
				if action.ActionType != "offline_conversion.purchase" {
					continue
				}

				value, err := coerceToFloat(action.Value)
				if err != nil {
					return nil, fmt.Errorf("action_value %q: %w", action.ActionType, err)
				}
				record["offline_conversion_purchase_value"] = value
			}
		}
	}

	reportDate, ok := item.GetString("date_start")
	if !ok {
		return nil, fmt.Errorf("item sem o campo obrigatório date_start")
	}
	record["report_date"] = reportDate

	if _, declared := record["video_views_p100"]; declared {
		record["video_views_p100"] = int64(0)
		if watched := item.Actions("video_p100_watched_actions"); len(watched) > 0 {
			value, err := coerceToInt(watched[0].Value)
			if err != nil {
				return nil, fmt.Errorf("video_p100_watched_actions: %w", err)
			}
			record["video_views_p100"] = value
		}
	}

	return record, nil
}

// actionFieldName converte um action_type da API no nome do campo de saída
// (pontos viram underscores e um "s" é adicionado ao final)
func actionFieldName(actionType string) string {
	return strings.ReplaceAll(actionType, ".", "_") + "s"
}

func defaultForType(fieldType domain.FieldType) any {
	switch fieldType {
	case domain.FieldTypeInteger:
		return int64(0)
	case domain.FieldTypeNumber:
		return float64(0)
	default:
		return ""
	}
}

func coerce(raw any, fieldType domain.FieldType) (any, error) {
	switch fieldType {
	case domain.FieldTypeInteger:
		return coerceToInt(raw)
	case domain.FieldTypeNumber:
		return coerceToFloat(raw)
	default:
		// Campos string passam adiante o valor bruto sem conversão
		return raw, nil
	}
}

func coerceToInt(raw any) (int64, error) {
	switch value := raw.(type) {
	case float64:
		return int64(value), nil
	case int64:
		return value, nil
	case int:
		return int64(value), nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("valor %q não conversível para inteiro", value)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("valor %v (%T) não conversível para inteiro", raw, raw)
	}
}

func coerceToFloat(raw any) (float64, error) {
	switch value := raw.(type) {
	case float64:
		return value, nil
	case int64:
		return float64(value), nil
	case int:
		return float64(value), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("valor %q não conversível para número", value)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("valor %v (%T) não conversível para número", raw, raw)
	}
}
