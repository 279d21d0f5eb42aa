package models

// Project groups secrets of one owner. Its id is serialized as "ID", the
// spelling existing clients already decode.
type Project struct {
	ID      int64  `db:"id" json:"ID"`
	Name    string `db:"name" json:"name"`
	OwnerID int64  `db:"owner_id" json:"owner_id"`
}
