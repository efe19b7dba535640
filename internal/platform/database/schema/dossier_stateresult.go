package schema

// StateResultTable represents the 'dossier.state_result' table.
// Rows are keyed by the fingerprint of their canonical query key.
type StateResultTable struct {
	Table       string
	Fingerprint string
	TableName   string
	QueryKey    string
	Payload     string
	UpdatedAt   string
}

// StateResult is the schema definition for dossier.state_result
var StateResult = StateResultTable{
	Table:       "dossier.state_result",
	Fingerprint: "fingerprint",
	TableName:   "table_name",
	QueryKey:    "query_key",
	Payload:     "payload",
	UpdatedAt:   "updated_at",
}

// Columns returns all standard column names
func (t StateResultTable) Columns() []string {
	return []string{t.Fingerprint, t.TableName, t.QueryKey, t.Payload, t.UpdatedAt}
}
