package bitcoin

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
)

// ScriptDecoder extracts addresses from an output script.
type ScriptDecoder interface {
	decodeAddresses(vout btcjson.Vout) ([]string, error)
}

// scriptDecoder extracts human-readable addresses from ScriptPubKey results.
type scriptDecoder struct {
	params *chaincfg.Params
}

// NewScriptDecoder initializes a decoder for extracting addresses using params of the provided network.
func NewScriptDecoder(network model.Network) (ScriptDecoder, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &scriptDecoder{params: params}, nil
}

func (d *scriptDecoder) decodeAddresses(vout btcjson.Vout) ([]string, error) {
	if len(vout.ScriptPubKey.Addresses) > 0 {
		return append([]string(nil), vout.ScriptPubKey.Addresses...), nil
	}
	if vout.ScriptPubKey.Address != "" {
		return []string{vout.ScriptPubKey.Address}, nil
	}
	if vout.ScriptPubKey.Hex == "" {
		return nil, nil
	}

	scriptBytes, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return nil, err
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(scriptBytes, d.params)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return result, nil
}

// ChainParams returns the chain parameters of network.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

// AddressValidator accepts addresses encoded for a single network.
type AddressValidator struct {
	params *chaincfg.Params
}

// NewAddressValidator creates an AddressValidator for network.
func NewAddressValidator(network model.Network) (*AddressValidator, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &AddressValidator{params: params}, nil
}

// ValidateAddress reports whether address decodes for the validator's network.
func (v *AddressValidator) ValidateAddress(address string) error {
	if address == "" {
		return errors.New("empty address")
	}
	addr, err := btcutil.DecodeAddress(address, v.params)
	if err != nil {
		return fmt.Errorf("decode address %q: %w", address, err)
	}
	if !addr.IsForNet(v.params) {
		return fmt.Errorf("address %q is not for %s", address, v.params.Name)
	}
	return nil
}
