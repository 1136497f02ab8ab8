package wallet

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/manifoldco/promptui"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// PasswordPrompt asks for a keystore password
type PasswordPrompt func(label string) (string, error)

// Wallet loads the configured signer on first use. Keystores are only
// decrypted when a transaction needs signing.
type Wallet struct {
	name     string
	cfg      *config.WalletConfig
	prompt   PasswordPrompt
	log      *slog.Logger
	loadOnce sync.Once
	loadErr  error
	address  common.Address

	keyMu sync.Mutex
	key   *ecdsa.PrivateKey
}

// NewWallet creates a wallet from runtime configuration
func NewWallet(cfg *config.RuntimeConfig, log *slog.Logger) *Wallet {
	w := &Wallet{
		name: cfg.WalletName,
		cfg:  cfg.Wallet,
		log:  log.With("component", "Wallet"),
	}
	if !cfg.NonInteractive {
		w.prompt = promptPassword
	}
	return w
}

// Account returns the wallet address or domain.ErrNotConnected
func (w *Wallet) Account(ctx context.Context) (common.Address, error) {
	if w.cfg == nil {
		return common.Address{}, domain.ErrNotConnected
	}
	w.loadOnce.Do(func() {
		w.loadErr = w.load()
	})
	if w.loadErr != nil {
		return common.Address{}, w.loadErr
	}
	return w.address, nil
}

// CanSign reports whether the wallet can sign transactions
func (w *Wallet) CanSign() bool {
	if w.cfg == nil {
		return false
	}
	return w.cfg.Type == config.WalletTypePrivateKey || w.cfg.Type == config.WalletTypeKeystore
}

// SignTx signs tx for chainID
func (w *Wallet) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if _, err := w.Account(ctx); err != nil {
		return nil, err
	}
	if !w.CanSign() {
		return nil, fmt.Errorf("%w: wallet '%s' is watch-only", domain.ErrNotConnected, w.name)
	}

	key, err := w.signingKey()
	if err != nil {
		return nil, err
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
}

func (w *Wallet) load() error {
	switch w.cfg.Type {
	case config.WalletTypePrivateKey:
		key, err := parsePrivateKey(w.cfg.PrivateKey)
		if err != nil {
			return fmt.Errorf("wallet '%s': invalid private key: %w", w.name, err)
		}
		w.key = key
		w.address = crypto.PubkeyToAddress(key.PublicKey)
	case config.WalletTypeKeystore:
		addr, err := keystoreAddress(w.cfg.Keystore)
		if err != nil {
			return fmt.Errorf("wallet '%s': %w", w.name, err)
		}
		w.address = addr
	case config.WalletTypeAddress:
		addr, err := domain.ParseAddress(w.cfg.Address)
		if err != nil {
			return fmt.Errorf("wallet '%s': %w", w.name, err)
		}
		w.address = addr
	default:
		return fmt.Errorf("wallet '%s': unknown type %q", w.name, w.cfg.Type)
	}
	w.log.Debug("wallet loaded", "name", w.name, "type", w.cfg.Type, "address", w.address.Hex())
	return nil
}

func (w *Wallet) signingKey() (*ecdsa.PrivateKey, error) {
	w.keyMu.Lock()
	defer w.keyMu.Unlock()

	if w.key != nil {
		return w.key, nil
	}

	data, err := os.ReadFile(w.cfg.Keystore)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	envName := w.cfg.PasswordEnv
	if envName == "" {
		envName = config.DefaultPasswordEnv
	}
	password, ok := os.LookupEnv(envName)
	if !ok {
		if w.prompt == nil {
			return nil, fmt.Errorf("%w: keystore password not set (export %s)", domain.ErrTransactionRejected, envName)
		}
		password, err = w.prompt(fmt.Sprintf("Password for %s", w.address.Hex()))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrTransactionRejected, err)
		}
	}

	unlocked, err := keystore.DecryptKey(data, password)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unlock keystore: %v", domain.ErrTransactionRejected, err)
	}
	// the header address is what reads and receipts were checked against
	if signer := crypto.PubkeyToAddress(unlocked.PrivateKey.PublicKey); signer != w.address {
		return nil, fmt.Errorf("%w: keystore key belongs to %s, not %s", domain.ErrTransactionRejected, signer.Hex(), w.address.Hex())
	}
	w.key = unlocked.PrivateKey
	return w.key, nil
}

// parsePrivateKey parses a hex private key with or without 0x prefix
func parsePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, error) {
	privateKeyHex = strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	return crypto.HexToECDSA(privateKeyHex)
}

// keystoreAddress reads the address field without decrypting the key
func keystoreAddress(path string) (common.Address, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read keystore: %w", err)
	}
	var header struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return common.Address{}, fmt.Errorf("failed to parse keystore: %w", err)
	}
	if !common.IsHexAddress(header.Address) {
		return common.Address{}, fmt.Errorf("keystore %s has no address", path)
	}
	return common.HexToAddress(header.Address), nil
}

func promptPassword(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	return prompt.Run()
}

var _ usecase.Wallet = (*Wallet)(nil)
