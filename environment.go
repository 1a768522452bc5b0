package pp

// defines available environment variables for configuration
const (
	EnvStoreAddress = "PP_KV_ADDRESS" // base url or host:port of the key value store.
	EnvStoreToken   = "PP_KV_TOKEN"   // acl token presented to the key value store.
	EnvStoreTimeout = "PP_KV_TIMEOUT" // upper bound on a single command's store interactions, see time.ParseDuration.
	EnvHostname     = "PP_HOSTNAME"   // override the local hostname.
	EnvApp          = "PP_APP"        // application to seed.
	EnvCluster      = "PP_CLUSTER"    // cluster the seeded application belongs to.
)
