package consul

import (
	"context"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
)

// ConsulBackend stores inventory objects in the HashiCorp Consul KV store.
//
// Every object is one JSON encoded value keyed by its path below the
// configured prefix. Consul KV limits a value to 512KB, which is far above
// the size of a single inventory object.
type ConsulBackend struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	// Configuration
	config *ConsulBackendConfig
}

// ConsulBackendConfig contains configuration options for the Consul backend
type ConsulBackendConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Namespace for Consul Enterprise (optional)
	Namespace string

	// Prefix for all keys in Consul KV (default: "vsh/inventory")
	Prefix string
}

// NewConsulBackend creates a new Consul-backed inventory backend
func NewConsulBackend(config *ConsulBackendConfig) (*ConsulBackend, error) {
	if config == nil {
		config = &ConsulBackendConfig{}
	}

	// Set defaults
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	config.Prefix = strings.Trim(config.Prefix, "/")
	if config.Prefix == "" {
		config.Prefix = "vsh/inventory"
	}

	// Create Consul client
	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulBackend{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend
func (*ConsulBackend) Name() string {
	return "consul"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend
func (cb *ConsulBackend) Open(ctx context.Context) error {
	// Verify the agent is reachable before the inventory relies on it
	_, err := cb.client.Status().Leader()
	return err
}

// Close is part of the lifecycle behaviour and gets called when closing this backend
func (cb *ConsulBackend) Close(ctx context.Context) error {
	// Nothing to clean up - Consul client is stateless
	return nil
}

// buildKey constructs the full Consul KV key from the object path.
// Objects live below "<prefix>/objects/" so the root never collides with
// the prefix itself.
func (cb *ConsulBackend) buildKey(path string) string {
	return cb.config.Prefix + "/objects/" + path
}

func (cb *ConsulBackend) queryOptions(ctx context.Context) *api.QueryOptions {
	return (&api.QueryOptions{}).WithContext(ctx)
}

func (cb *ConsulBackend) writeOptions(ctx context.Context) *api.WriteOptions {
	return (&api.WriteOptions{}).WithContext(ctx)
}
