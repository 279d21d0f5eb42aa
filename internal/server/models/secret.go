package models

// Secret is a key/value pair of one project. Value holds the sealed form in
// storage and the plaintext once a service has opened it.
type Secret struct {
	ID        int64  `db:"id" json:"id"`
	ProjectID int64  `db:"project_id" json:"project_id"`
	Key       string `db:"key" json:"key"`
	Value     string `db:"value" json:"value"`
}
