package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// Auth endpoint rate limiting: 20 attempts per minute per IP, with a
	// small burst for clients that retry immediately.
	authRatePerSecond = 20.0 / 60.0
	authBurst         = 5
)
