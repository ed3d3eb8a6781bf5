package model

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Block is a block as seen by the watcher: identity, parent pointer and transactions.
type Block struct {
	Hash         chainhash.Hash
	PrevHash     chainhash.Hash
	Timestamp    time.Time
	Transactions []Transaction
}

// Transaction is a decoded transaction with the data needed to derive balance changes.
type Transaction struct {
	TxID    chainhash.Hash
	Inputs  []TransactionInput
	Outputs []TransactionOutput
}

// TransactionInput references a previous output. Coinbase inputs have no previous output.
type TransactionInput struct {
	PrevTxID   chainhash.Hash
	PrevVout   uint32
	IsCoinbase bool
}

// TransactionOutput is an output with its value and decoded addresses.
type TransactionOutput struct {
	Index     uint32
	Value     btcutil.Amount
	Addresses []string
}

// BalanceChange is a signed amount moved to or from an address by a single transaction.
type BalanceChange struct {
	Coin    Coin
	Address string
	Amount  btcutil.Amount
}
