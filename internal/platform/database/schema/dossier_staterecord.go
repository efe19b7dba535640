package schema

// StateRecordTable represents the 'dossier.state_record' table.
// It holds one row per id-keyed record and one per singleton table.
type StateRecordTable struct {
	Table     string
	TableName string
	RecordID  string
	Payload   string
	UpdatedAt string
}

// StateRecord is the schema definition for dossier.state_record
var StateRecord = StateRecordTable{
	Table:     "dossier.state_record",
	TableName: "table_name",
	RecordID:  "record_id",
	Payload:   "payload",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names
func (t StateRecordTable) Columns() []string {
	return []string{t.TableName, t.RecordID, t.Payload, t.UpdatedAt}
}
