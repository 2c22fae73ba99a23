package grocery

// Event topics published by the store
const (
	TopicMemberEnrolled    = "member:enrolled"
	TopicMemberRemoved     = "member:removed"
	TopicProductAdded      = "product:added"
	TopicProductRemoved    = "product:removed"
	TopicOrderPlaced       = "order:placed"
	TopicShipmentReceived  = "shipment:received"
	TopicCheckoutClosed    = "checkout:closed"
	TopicCheckoutCancelled = "checkout:cancelled"
)

// Topics lists every topic, for subscribers that want all of them
var Topics = []string{
	TopicMemberEnrolled,
	TopicMemberRemoved,
	TopicProductAdded,
	TopicProductRemoved,
	TopicOrderPlaced,
	TopicShipmentReceived,
	TopicCheckoutClosed,
	TopicCheckoutCancelled,
}
