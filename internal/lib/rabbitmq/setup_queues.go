package rabbitmq

// QueueConfig binds one queue to a routing key on the alerts exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Routing keys of the alerts exchange, one per ledger flag worth operator
// attention.
const (
	RoutingKeyCollections = "collections" // hours delivered, balance owed
	RoutingKeyBacklog     = "backlog"     // fully paid, hours pending
	RoutingKeyCloseout    = "closeout"    // ready to be closed
)

// GetAlertQueues returns the queue bindings consumed by the flag sender.
func GetAlertQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "alerts.collections", RoutingKey: RoutingKeyCollections},
		{QueueName: "alerts.backlog", RoutingKey: RoutingKeyBacklog},
		{QueueName: "alerts.closeout", RoutingKey: RoutingKeyCloseout},
	}
}
