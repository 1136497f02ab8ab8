package config

const (
	// ProjectFileName is the project configuration file
	ProjectFileName = "devote.toml"
	// DataDirName holds local state such as config.local.json
	DataDirName = ".devote"
)

// DevoteFileConfig is the parsed devote.toml project file.
type DevoteFileConfig struct {
	Networks  map[string]NetworkConfig `toml:"networks,omitempty"`
	Contracts Contracts                `toml:"contracts"`
	Wallets   map[string]WalletConfig  `toml:"wallets,omitempty"`
	Defaults  DefaultsConfig           `toml:"defaults"`
}

// NetworkConfig is a [networks.<name>] table
type NetworkConfig struct {
	RPCURL      string `toml:"rpc_url"`
	ChainID     uint64 `toml:"chain_id,omitempty"`
	ExplorerURL string `toml:"explorer_url,omitempty"`
	// BlockTime is a duration string such as "12s", used as the receipt poll interval
	BlockTime string `toml:"block_time,omitempty"`
	// Contracts overrides the top-level [contracts] table for this network
	Contracts *Contracts `toml:"contracts,omitempty"`
}

// DefaultsConfig is the [defaults] table
type DefaultsConfig struct {
	Network string `toml:"network,omitempty"`
	Wallet  string `toml:"wallet,omitempty"`
}

// WalletType identifies how transactions are signed
type WalletType string

const (
	WalletTypePrivateKey WalletType = "private_key"
	WalletTypeKeystore   WalletType = "keystore"
	// WalletTypeAddress is a watch-only wallet that can read receipts but not sign
	WalletTypeAddress WalletType = "address"
)

// WalletConfig is a [wallets.<name>] table
type WalletConfig struct {
	Type        WalletType `toml:"type" json:"type"`
	PrivateKey  string     `toml:"private_key" json:"-"`
	Keystore    string     `toml:"keystore" json:"keystore,omitempty"`
	PasswordEnv string     `toml:"password_env" json:"passwordEnv,omitempty"`
	Address     string     `toml:"address" json:"address,omitempty"`
}

// DefaultPasswordEnv is read when a keystore wallet doesn't name its own variable
const DefaultPasswordEnv = "DEVOTE_KEYSTORE_PASSWORD"
