package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a host:port pair implementing flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the client command-line flags.
//
// Flags:
//
//	-a backend address in format [host]:[port]
//	-d local database DSN (SQLite file path)
//	-request-timeout outbound request timeout (e.g., "15s", "1m")
//	-refresh-interval background chat refresh period (e.g., "5m")
//	-theme default UI theme ("light" or "dark")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var backendAddress NetAddress
	var databaseDSN string
	var requestTimeout time.Duration
	var refreshInterval time.Duration
	var theme string
	var jsonConfigPath string

	flag.Var(&backendAddress, "a", "Backend net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Chat refresh interval (e.g., 5m)")
	flag.StringVar(&theme, "theme", "", "UI theme: light or dark")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Theme: theme,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:    backendAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String renders the address as host:port. A zero NetAddress renders as the
// empty string so an unset flag does not override other config sources.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses a host:port string into the NetAddress. The port must be a
// positive integer and the host must be "localhost" or a valid IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, found := strings.Cut(s, ":")
	if !found || strings.Contains(portStr, ":") {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
