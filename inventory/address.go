package inventory

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/mwantia/vsh/inventory/backend"
	"github.com/mwantia/vsh/inventory/backend/consul"
	"github.com/mwantia/vsh/inventory/backend/direct"
	"github.com/mwantia/vsh/inventory/backend/memory"
	"github.com/mwantia/vsh/inventory/backend/postgres"
	"github.com/mwantia/vsh/inventory/backend/s3"
	"github.com/mwantia/vsh/inventory/backend/sqlite"
)

// ParseBackendAddress creates the backend described by address:
//
//	memory:
//	sqlite://<file>|:memory:
//	postgres://<user>:<password>@<host>:<port>/<database>
//	consul://<host>:<port>/<prefix>?token=<token>&datacenter=<dc>
//	s3://<access_key>:<secret_key>@<endpoint>/<bucket>/<prefix>?ssl=<bool>
//	direct://<directory>
//
// Every address accepts "readonly=true" as query parameter, which wraps
// the backend with backend.NewReadOnly.
func ParseBackendAddress(address string) (backend.Backend, error) {
	address, readonly, err := splitReadOnly(strings.TrimSpace(address))
	if err != nil {
		return nil, err
	}

	b, err := parseBackendAddress(address)
	if err != nil || !readonly {
		return b, err
	}

	return backend.NewReadOnly(b), nil
}

func parseBackendAddress(address string) (backend.Backend, error) {
	// Quick check to identify if we work with a possibly valid address
	if !strings.Contains(address, ":") {
		return nil, fmt.Errorf("failed to parse address '%s': %w", address, ErrMalformedAddress)
	}
	// Addresses without a location
	switch address {
	case "memory:", ":memory:", "memory://":
		return memory.NewMemoryBackend(), nil
	}
	// Protocol-based parsing
	switch {
	case strings.HasPrefix(address, "sqlite://"):
		return parseSqliteAddress(strings.TrimPrefix(address, "sqlite://"))
	case strings.HasPrefix(address, "postgres://"):
		return parsePostgresAddress(strings.TrimPrefix(address, "postgres://"))
	case strings.HasPrefix(address, "postgresql://"):
		return parsePostgresAddress(strings.TrimPrefix(address, "postgresql://"))
	case strings.HasPrefix(address, "psql://"):
		return parsePostgresAddress(strings.TrimPrefix(address, "psql://"))
	case strings.HasPrefix(address, "consul://"):
		return parseConsulAddress(address)
	case strings.HasPrefix(address, "s3://"):
		return parseS3Address(address)
	case strings.HasPrefix(address, "minio://"):
		return parseS3Address(address)
	case strings.HasPrefix(address, "direct://"):
		return parseDirectAddress(strings.TrimPrefix(address, "direct://"))
	case strings.HasPrefix(address, "file://"):
		return parseDirectAddress(strings.TrimPrefix(address, "file://"))
	}

	return nil, fmt.Errorf("failed to parse address '%s': %w", address, ErrUnknownBackend)
}

func parseSqliteAddress(address string) (backend.Backend, error) {
	if address == "" {
		return nil, fmt.Errorf("sqlite address requires a file: %w", ErrMalformedAddress)
	}

	return sqlite.NewSQLiteBackend(address)
}

func parsePostgresAddress(address string) (backend.Backend, error) {
	return postgres.NewPostgresBackend("postgres://" + address)
}

func parseConsulAddress(address string) (backend.Backend, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedAddress, err)
	}

	query := u.Query()
	return consul.NewConsulBackend(&consul.ConsulBackendConfig{
		Address:    u.Host,
		Token:      query.Get("token"),
		Datacenter: query.Get("datacenter"),
		Namespace:  query.Get("namespace"),
		Prefix:     u.Path,
	})
}

func parseS3Address(address string) (backend.Backend, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedAddress, err)
	}

	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if u.Host == "" || bucket == "" {
		return nil, fmt.Errorf("s3 address requires an endpoint and a bucket: %w", ErrMalformedAddress)
	}

	query := u.Query()
	accessKey, secretKey := query.Get("access_key"), query.Get("secret_key")
	if u.User != nil {
		accessKey = u.User.Username()
		secretKey, _ = u.User.Password()
	}

	useSsl := true
	if value := query.Get("ssl"); value != "" {
		if useSsl, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("%w: invalid ssl value '%s'", ErrMalformedAddress, value)
		}
	}

	return s3.NewS3Backend(u.Host, bucket, prefix, accessKey, secretKey, useSsl)
}

func parseDirectAddress(address string) (backend.Backend, error) {
	if address == "" {
		return nil, fmt.Errorf("direct address requires a directory: %w", ErrMalformedAddress)
	}

	return direct.NewDirectBackend(os.ExpandEnv(address))
}

// splitReadOnly removes the readonly query parameter from address.
func splitReadOnly(address string) (string, bool, error) {
	base, rawQuery, found := strings.Cut(address, "?")
	if !found {
		return address, false, nil
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrMalformedAddress, err)
	}
	if !query.Has("readonly") {
		return address, false, nil
	}

	readonly, err := strconv.ParseBool(query.Get("readonly"))
	if err != nil {
		return "", false, fmt.Errorf("%w: invalid readonly value '%s'", ErrMalformedAddress, query.Get("readonly"))
	}

	query.Del("readonly")
	if len(query) > 0 {
		base += "?" + query.Encode()
	}

	return base, readonly, nil
}
