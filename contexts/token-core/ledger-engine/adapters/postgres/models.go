package postgresadapter

import "time"

type transferModel struct {
	TransferID    string    `gorm:"column:transfer_id;primaryKey"`
	Kind          string    `gorm:"column:kind;index"`
	CallerAddress string    `gorm:"column:caller_address;index"`
	FromAddress   string    `gorm:"column:from_address;index"`
	ToAddress     string    `gorm:"column:to_address;index"`
	Amount        string    `gorm:"column:amount"`
	OccurredAt    time.Time `gorm:"column:occurred_at;index"`
}

func (transferModel) TableName() string { return "token_transfers" }

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "token_outbox" }
