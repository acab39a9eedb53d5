package kafka

import "time"

// CommandAppliedEvent is emitted after a natural-language command has been
// committed to the inventory store.
type CommandAppliedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	ItemName    string    `json:"item_name"`
	Quantity    int       `json:"quantity"`
	ShelfID     uint      `json:"shelf_id"`
	ContainerID uint      `json:"container_id"`
	Version     int64     `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeCommandApplied = "inventory.command.applied"
)

// Kafka topics
const (
	TopicCommandApplied = "inventory-command-applied"
)
