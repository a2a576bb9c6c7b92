package gateway

// Frame type constants
const (
	MessageTypePing = "ping"
	MessageTypePong = "pong"
)

// Application close codes
const (
	// CloseInvalidRequest identifies a malformed upgrade request (missing
	// host or path). Handshake validation refuses such requests with HTTP
	// 400 before any socket exists; the code stays reserved for clients
	// that map handshake failures onto close codes.
	CloseInvalidRequest = 4000
	// CloseAuthFailure is sent when authentication fails after the upgrade
	// already succeeded, to distinguish it from a normal closure.
	CloseAuthFailure = 4001
)

// Credential sources
const (
	TokenQueryParam = "token"
	AuthCookieName  = "authToken"
)

// Handshake rejection reasons
const (
	ReasonTokenRequired = "authentication token required"
	ReasonInvalidToken  = "invalid token"
	ReasonBadRequest    = "bad request"
)

// Default configuration values
const (
	DefaultPath              = "/ws"
	DefaultHeartbeatInterval = 30
	DefaultMaxConnections    = 100000
	DefaultSendBufferSize    = 256
	DefaultReadBufferSize    = 1024
	DefaultWriteBufferSize   = 1024
	DefaultMaxMessageSize    = 4096
	DefaultWriteTimeoutMs    = 10000
)

// Environment variable configuration keys
const (
	EnvGatewayPath              = "GATEWAY_PATH"
	EnvGatewayHeartbeatInterval = "GATEWAY_HEARTBEAT_INTERVAL"
	EnvGatewayMaxConnections    = "GATEWAY_MAX_CONNECTIONS"
	EnvGatewaySendBufferSize    = "GATEWAY_SEND_BUFFER_SIZE"
	EnvGatewayReadBufferSize    = "GATEWAY_READ_BUFFER_SIZE"
	EnvGatewayWriteBufferSize   = "GATEWAY_WRITE_BUFFER_SIZE"
	EnvGatewayMaxMessageSize    = "GATEWAY_MAX_MESSAGE_SIZE"
	EnvGatewayWriteTimeoutMs    = "GATEWAY_WRITE_TIMEOUT_MS"
)
