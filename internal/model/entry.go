package model

// Entry is one record in the action history. Entries are append-only:
// created on every mutating operation, never updated, never deleted.
// Stored sequence order equals chronological order because appends are
// serialized per collection key.
type Entry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"` // RFC 3339
}

func (e Entry) EntityID() string { return e.ID }

func (e Entry) WithEntityID(id string) Entry {
	e.ID = id
	return e
}
