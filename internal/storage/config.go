package storage

const (
	KEY_POOLKEYS    = "storage::pool_keys"
	KEY_EXTRA_METAS = "storage::extra_account_metas"
)

const (
	TABLE_NAME_FEE_EVENTS = "fee_events"
)
