package domain

// FieldType representa o tipo declarado de uma propriedade no schema de destino
type FieldType string

const (
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeString  FieldType = "string"
)

// DestinationSchema mapeia o nome de cada propriedade de saída para seu tipo declarado.
// Todo OutputRecord contém exatamente as chaves declaradas aqui (mais as chaves
// derivadas de ações que coincidirem com o schema).
type DestinationSchema map[string]FieldType

// RawInsightItem é um item bruto retornado pelo endpoint de insights da Graph API.
// A estrutura varia por stream, então o acesso é feito por accessors seguros
// em vez de structs fixas.
type RawInsightItem map[string]any

// OutputRecord é o registro tipado emitido para o sink
type OutputRecord map[string]any

// Action é uma entrada de {action_type, value} dentro dos arrays "actions",
// "unique_actions" e "action_values"
type Action struct {
	ActionType string
	Value      any
}

// GetString retorna o valor de uma chave como string, indicando se existe
func (r RawInsightItem) GetString(key string) (string, bool) {
	raw, ok := r[key]
	if !ok {
		return "", false
	}

	value, ok := raw.(string)
	return value, ok
}

// Actions retorna as entradas {action_type, value} de um array aninhado.
// Entradas malformadas são ignoradas; a chave ausente retorna nil.
func (r RawInsightItem) Actions(key string) []Action {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}

	actions := make([]Action, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		actionType, _ := m["action_type"].(string)
		actions = append(actions, Action{
			ActionType: actionType,
			Value:      m["value"],
		})
	}

	return actions
}
