package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "24h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-redis redis address in format [host]:[port]
//	-blob-backend blob backend ("local" or "azure")
//	-blob-dir local blob directory
//	-client-url client URL receiving the Google redirect
//	-server client: API base URL
//	-local-db client: SQLite file path
//	-callback-address client: loopback address for the Google redirect
//	-callback-url client: redirect URL carrying ?token=
func ParseFlags() (*StructuredConfig, error) {
	var serverAddress, redisAddress, callbackAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var blobBackend, blobDir string
	var clientURL string
	var apiURL, localDSN, redirectURL string

	fs := flag.CommandLine
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Var(&redisAddress, "redis", "Redis address host:port")
	fs.StringVar(&blobBackend, "blob-backend", "", "Blob backend: local or azure")
	fs.StringVar(&blobDir, "blob-dir", "", "Local blob directory")
	fs.StringVar(&clientURL, "client-url", "", "Client URL receiving the Google redirect")
	fs.StringVar(&apiURL, "server", "", "API base URL (client)")
	fs.StringVar(&localDSN, "local-db", "", "Local SQLite file (client)")
	fs.Var(&callbackAddress, "callback-address", "Loopback address host:port for the Google redirect (client)")
	fs.StringVar(&redirectURL, "callback-url", "", "Redirect URL carrying ?token= (client)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Redis: Redis{Address: redisAddress.String()},
			Blob:  Blob{Backend: blobBackend, Dir: blobDir},
			Local: Local{DSN: localDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			ClientURL:      clientURL,
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:     apiURL,
			RequestTimeout:  requestTimeout,
			CallbackAddress: callbackAddress.String(),
			RedirectURL:     redirectURL,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
