package config

import "os"

// Chaincode captures process-level configuration for the
// chaincode-as-a-service runtime and its ops listener.
type Chaincode struct {
	// ChaincodeID is the package ID the peer assigned at install time.
	ChaincodeID string
	// ListenAddr is where the chaincode server accepts peer connections.
	ListenAddr string
	// OpsAddr serves health and metrics.
	OpsAddr string
}

// FromEnv builds a Chaincode config from environment variables so main
// stays lean.
func FromEnv() Chaincode {
	ccid := os.Getenv("CHAINCODE_ID")

	listen := os.Getenv("CHAINCODE_SERVER_ADDRESS")
	if listen == "" {
		listen = ":9999"
	}

	ops := os.Getenv("REGNET_OPS_ADDR")
	if ops == "" {
		ops = ":8080"
	}

	return Chaincode{
		ChaincodeID: ccid,
		ListenAddr:  listen,
		OpsAddr:     ops,
	}
}
