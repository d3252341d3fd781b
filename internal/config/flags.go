package config

import (
	"errors"
	"net"
	"strconv"

	"github.com/spf13/pflag"
)

// NetAddress is a host:port flag value.
type NetAddress struct {
	Host string
	Port int
}

// BindFlags registers the config flags on fs and returns the config they
// fill in once fs is parsed. Pass the result to [Load].
//
// Flags:
//
//	-d, --database        vault URL
//	-k, --keyfile         key file path
//	-c, --config          JSON config file path
//	    --cache-dir       fallback cache directory
//	    --log             log level
//	    --http-timeout    web backend timeout
func BindFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}

	fs.StringVarP(&cfg.Vault.DatabaseURL, "database", "d", "", "vault URL (file://, s3://, s3+http://, https://)")
	fs.StringVarP(&cfg.Vault.Keyfile, "keyfile", "k", "", "KeePass key file path")
	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")
	fs.StringVar(&cfg.Storage.CacheDir, "cache-dir", "", "fallback cache directory (default ~/.key/cache)")
	fs.StringVar(&cfg.LogLevel, "log", "", "log level (trace, debug, info, warn, error)")
	fs.DurationVar(&cfg.Storage.HTTP.Timeout, "http-timeout", 0, "web backend request timeout")

	return cfg
}

// BindServerFlags registers flags of the local API server.
func BindServerFlags(fs *pflag.FlagSet, cfg *StructuredConfig) {
	fs.Var(&addressFlag{cfg: &cfg.Server.Address}, "address", "listen address host:port")
	fs.StringVar(&cfg.Server.TokenSignKey, "token-sign-key", "", "bearer token signing key")
	fs.DurationVar(&cfg.Server.TokenDuration, "token-duration", 0, "bearer token lifetime")
	fs.DurationVar(&cfg.Server.ReloadInterval, "reload-interval", 0, "vault reload interval, negative to disable")
}

// addressFlag validates a host:port and stores its canonical form.
type addressFlag struct {
	cfg *string
}

func (f *addressFlag) String() string {
	if f.cfg == nil {
		return ""
	}
	return *f.cfg
}

func (f *addressFlag) Set(s string) error {
	var a NetAddress
	if err := a.Set(s); err != nil {
		return err
	}
	*f.cfg = a.String()
	return nil
}

func (f *addressFlag) Type() string { return "host:port" }

// String returns host:port, or "" when nothing is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
