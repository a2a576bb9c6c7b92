package gateway

import (
	"fmt"
	"time"

	"github.com/code-100-precent/LingChat/pkg/utils"
)

// Config is the gateway configuration
type Config struct {
	// Path the upgrade endpoint is mounted on
	Path string
	// Heartbeat sweep interval
	HeartbeatInterval time.Duration
	// Maximum concurrent connections
	MaxConnections int64
	// Per-connection outbound queue length
	SendBufferSize int
	// Read buffer size
	ReadBufferSize int
	// Write buffer size
	WriteBufferSize int
	// Maximum inbound frame size
	MaxMessageSize int64
	// Write deadline applied to outbound frames and control messages
	WriteTimeout time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Path:              DefaultPath,
		HeartbeatInterval: DefaultHeartbeatInterval * time.Second,
		MaxConnections:    DefaultMaxConnections,
		SendBufferSize:    DefaultSendBufferSize,
		ReadBufferSize:    DefaultReadBufferSize,
		WriteBufferSize:   DefaultWriteBufferSize,
		MaxMessageSize:    DefaultMaxMessageSize,
		WriteTimeout:      DefaultWriteTimeoutMs * time.Millisecond,
	}
}

// LoadConfigFromEnv loads gateway configuration from environment variables
func LoadConfigFromEnv() *Config {
	config := DefaultConfig()

	if path := utils.GetEnv(EnvGatewayPath); path != "" {
		config.Path = path
	}
	if interval := utils.GetIntEnv(EnvGatewayHeartbeatInterval); interval > 0 {
		config.HeartbeatInterval = time.Duration(interval) * time.Second
	}
	if maxConnections := utils.GetIntEnv(EnvGatewayMaxConnections); maxConnections > 0 {
		config.MaxConnections = maxConnections
	}
	if sendBuf := utils.GetIntEnv(EnvGatewaySendBufferSize); sendBuf > 0 {
		config.SendBufferSize = int(sendBuf)
	}
	if readBuf := utils.GetIntEnv(EnvGatewayReadBufferSize); readBuf > 0 {
		config.ReadBufferSize = int(readBuf)
	}
	if writeBuf := utils.GetIntEnv(EnvGatewayWriteBufferSize); writeBuf > 0 {
		config.WriteBufferSize = int(writeBuf)
	}
	if maxMsg := utils.GetIntEnv(EnvGatewayMaxMessageSize); maxMsg > 0 {
		config.MaxMessageSize = maxMsg
	}
	if writeTimeoutMs := utils.GetIntEnv(EnvGatewayWriteTimeoutMs); writeTimeoutMs > 0 {
		config.WriteTimeout = time.Duration(writeTimeoutMs) * time.Millisecond
	}

	return config
}

// ValidateConfig validates gateway configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if config.Path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if config.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat interval must be positive")
	}
	if config.MaxConnections <= 0 {
		return fmt.Errorf("max connections must be positive")
	}
	if config.SendBufferSize <= 0 {
		return fmt.Errorf("send buffer size must be positive")
	}
	if config.MaxMessageSize <= 0 {
		return fmt.Errorf("max message size must be positive")
	}
	return nil
}
