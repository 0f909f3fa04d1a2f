package constants

const (
	CollectionClients   = "clients"
	CollectionIPs       = "ip_addresses"
	CollectionWhitelist = "whitelist_entries"
	CollectionLogs      = "api_logs"
)

const (
	DefaultClientStatus = "active"
	DefaultIPSource     = "manual"
	DefaultProtocol     = "udp"
	DefaultWhitelister  = "system"
)

const (
	EventClientCreated = "client.created"
	EventIPAdded       = "ip.added"
	EventIPWhitelisted = "ip.whitelisted"
)
