package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress is a host:port flag value. An empty host listens on every
// interface; a non-empty host must be "localhost" or an IP address.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the document server flags from args.
//
//	--address, -a          listen address, host:port
//	--database-dsn, -d     postgres URL or SQLite file of the document store
//	--config, -c           JSON config file
//	--request-timeout      upper bound of one request
//	--hash-key             HMAC key checked on document uploads
//	--server-version       version reported by /api/version/
//	--log-level            zerolog level
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		address        NetAddress
		dsn            string
		jsonConfigPath string
		requestTimeout time.Duration
		hashKey        string
		version        string
		logLevel       string
	)

	fs := pflag.NewFlagSet("melon-server", pflag.ContinueOnError)
	fs.VarP(&address, "address", "a", "listen address host:port")
	fs.StringVarP(&dsn, "database-dsn", "d", "", "document store DSN (postgres URL or SQLite file)")
	fs.StringVarP(&jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "request timeout (e.g. 30s, 1m)")
	fs.StringVar(&hashKey, "hash-key", "", "HMAC key of document uploads")
	fs.StringVar(&version, "server-version", "", "version reported to clients")
	fs.StringVar(&logLevel, "log-level", "", "log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			HashKey: hashKey,
			Version: version,
		},
		Storage: Storage{
			DB: DB{DSN: dsn},
		},
		Server: Server{
			HTTPAddress:    address.String(),
			RequestTimeout: requestTimeout,
		},
		Log:          Log{Level: logLevel},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set implements pflag.Value.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form host:port: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("bad port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be in 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("incorrect IP address %q", host)
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
