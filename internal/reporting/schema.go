package reporting

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/meta-reporting-tap/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type schemaFile struct {
	Properties map[string]schemaProperty `json:"properties"`
}

type schemaProperty struct {
	// Type pode ser uma string simples ou, em schemas singer, uma lista como
	// ["null", "integer"]; qualquer coisa que não seja "integer" ou "number"
	// recebe a semântica de string (pass-through)
	Type any `json:"type"`
}

// LoadDestinationSchema lê o schema de destino fornecido pelo caller (arquivo
// JSON com um objeto "properties") e o normaliza para o DestinationSchema usado
// pelo mapper
func LoadDestinationSchema(path string) (domain.DestinationSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler schema de destino %q: %w", path, err)
	}

	var parsed schemaFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("erro ao decodificar schema de destino %q: %w", path, err)
	}

	if len(parsed.Properties) == 0 {
		return nil, fmt.Errorf("schema de destino %q sem properties", path)
	}

	schema := make(domain.DestinationSchema, len(parsed.Properties))
	for name, prop := range parsed.Properties {
		schema[name] = normalizeFieldType(prop.Type)
	}

	return schema, nil
}

func normalizeFieldType(raw any) domain.FieldType {
	declared, ok := raw.(string)
	if !ok {
		return domain.FieldTypeString
	}

	switch domain.FieldType(declared) {
	case domain.FieldTypeInteger:
		return domain.FieldTypeInteger
	case domain.FieldTypeNumber:
		return domain.FieldTypeNumber
	default:
		return domain.FieldTypeString
	}
}
