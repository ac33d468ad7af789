package cmd

import "time"

// Config carries the deployment settings the service reads at startup.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// StaleOrderTTL is how long a POSTED order may wait for bids before the
	// sweep cancels it.
	StaleOrderTTL time.Duration

	// AdminUserIDs lists the platform operators allowed to resolve disputes
	// and force transitions.
	AdminUserIDs []string
}
