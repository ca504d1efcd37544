package storage

import "database/sql"

var (
	FeeEvents *FeeEventStorage
)

func Init(client *sql.DB) {
	FeeEvents = NewFeeEventStorage(client)
}
