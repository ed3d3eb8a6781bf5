// Package bitcoin adapts a Bitcoin-family node to the watcher: block conversion,
// script address decoding and balance change decoding.
package bitcoin

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/goodnatureofminers/blockinsight7000-watcher/pkg/safe"
)

// BtcToSatoshis converts a non-negative BTC amount to satoshis.
func BtcToSatoshis(value float64) (btcutil.Amount, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return amt, nil
}

// BuildBlockFromVerbose maps a verbose block result into a model.Block.
func BuildBlockFromVerbose(src btcjson.GetBlockVerboseTxResult, converter *TransactionConverter) (*model.Block, error) {
	hash, err := chainhash.NewHashFromStr(src.Hash)
	if err != nil {
		return nil, fmt.Errorf("block %d hash parse: %w", src.Height, err)
	}
	var prev chainhash.Hash
	if src.PreviousHash != "" {
		parsed, err := chainhash.NewHashFromStr(src.PreviousHash)
		if err != nil {
			return nil, fmt.Errorf("block %d previous hash parse: %w", src.Height, err)
		}
		prev = *parsed
	}

	txs := make([]model.Transaction, 0, len(src.Tx))
	for _, tx := range src.Tx {
		converted, err := converter.Convert(tx)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", src.Height, err)
		}
		txs = append(txs, *converted)
	}

	return &model.Block{
		Hash:         *hash,
		PrevHash:     prev,
		Timestamp:    time.Unix(src.Time, 0).UTC(),
		Transactions: txs,
	}, nil
}

// TransactionConverter converts raw RPC transactions into domain transactions.
type TransactionConverter struct {
	decoder ScriptDecoder
}

// NewTransactionConverter creates a TransactionConverter.
func NewTransactionConverter(decoder ScriptDecoder) *TransactionConverter {
	return &TransactionConverter{decoder: decoder}
}

// Convert maps inputs and outputs of tx.
func (c *TransactionConverter) Convert(tx btcjson.TxRawResult) (*model.Transaction, error) {
	txID, err := chainhash.NewHashFromStr(tx.Txid)
	if err != nil {
		return nil, fmt.Errorf("tx %q id parse: %w", tx.Txid, err)
	}

	inputs := make([]model.TransactionInput, 0, len(tx.Vin))
	for idx, vin := range tx.Vin {
		if vin.IsCoinBase() {
			inputs = append(inputs, model.TransactionInput{IsCoinbase: true})
			continue
		}
		prev, err := chainhash.NewHashFromStr(vin.Txid)
		if err != nil {
			return nil, fmt.Errorf("tx %s input %d prev id parse: %w", tx.Txid, idx, err)
		}
		inputs = append(inputs, model.TransactionInput{PrevTxID: *prev, PrevVout: vin.Vout})
	}

	outputs, err := c.convertOutputs(tx)
	if err != nil {
		return nil, err
	}

	return &model.Transaction{TxID: *txID, Inputs: inputs, Outputs: outputs}, nil
}

func (c *TransactionConverter) convertOutputs(tx btcjson.TxRawResult) ([]model.TransactionOutput, error) {
	outputs := make([]model.TransactionOutput, 0, len(tx.Vout))
	for idx, vout := range tx.Vout {
		if vout.Value < 0 {
			return nil, fmt.Errorf("tx %s output %d negative value: %f", tx.Txid, idx, vout.Value)
		}

		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s output index overflow: %w", tx.Txid, err)
		}
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d safe value: %w", tx.Txid, idx, err)
		}
		addresses, err := c.decoder.decodeAddresses(vout)
		if err != nil {
			return nil, fmt.Errorf("decode addresses for tx %s output %d: %w", tx.Txid, idx, err)
		}

		outputs = append(outputs, model.TransactionOutput{
			Index:     index,
			Value:     value,
			Addresses: addresses,
		})
	}
	return outputs, nil
}
