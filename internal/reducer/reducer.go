// Package reducer implements the bank of pluggable projectors that turn one
// decoded block into a stream of CRDT commands. Each reducer kind is a
// variant with its own state; dispatch is by an exhaustive switch in Build,
// keeping the set closed.
package reducer

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// ErrContextMiss is fatal: a reducer needed a resolved input the block
// context did not contain, which indicates a block-fetch bug rather than a
// retriable fault.
var ErrContextMiss = errors.New("reducer: required resolved input missing from block context")

// Emit is how a reducer hands a command to the reducer-stage worker.
type Emit func(model.CRDTCommand)

// Reducer is a stateless-per-block projector.
type Reducer interface {
	Kind() string
	ReduceBlock(point model.Point, block *wire.MultiEraBlock, ctx model.BlockContext, emit Emit) error
}

// Kind names the reducer kinds this repo recognizes.
type Kind string

const (
	KindUtxoByAddress                     Kind = "UtxoByAddress"
	KindPointByTx                         Kind = "PointByTx"
	KindPoolByStake                       Kind = "PoolByStake"
	KindAddressByTxo                      Kind = "AddressByTxo"
	KindTotalTransactionsCount            Kind = "TotalTransactionsCount"
	KindTransactionsCountByEpoch          Kind = "TransactionsCountByEpoch"
	KindTransactionsCountByAddress        Kind = "TransactionsCountByAddress"
	KindTransactionsCountByAddressByEpoch Kind = "TransactionsCountByAddressByEpoch"
	KindTotalTransactionsCountByAddresses Kind = "TotalTransactionsCountByAddresses"
	KindBalanceByAddress                  Kind = "BalanceByAddress"
	KindTransactionsCountByScriptHash     Kind = "TransactionsCountByScriptHash"
)

// Config is the tagged configuration a reducer is bootstrapped from.
type Config struct {
	Kind      Kind
	Addresses []string // used only by TotalTransactionsCountByAddresses
}

// Build constructs the concrete Reducer a Config describes.
func (c Config) Build(chain *crosscut.ChainWellKnownInfo) (Reducer, error) {
	switch c.Kind {
	case KindUtxoByAddress:
		return &UtxoByAddress{}, nil
	case KindPointByTx:
		return &PointByTx{}, nil
	case KindPoolByStake:
		return &PoolByStake{}, nil
	case KindAddressByTxo:
		return &AddressByTxo{}, nil
	case KindTotalTransactionsCount:
		return &TotalTransactionsCount{}, nil
	case KindTransactionsCountByEpoch:
		return &TransactionsCountByEpoch{Chain: chain}, nil
	case KindTransactionsCountByAddress:
		return &TransactionsCountByAddress{}, nil
	case KindTransactionsCountByAddressByEpoch:
		return &TransactionsCountByAddressByEpoch{Chain: chain}, nil
	case KindTotalTransactionsCountByAddresses:
		return &TotalTransactionsCountByAddresses{Addresses: c.Addresses}, nil
	case KindBalanceByAddress:
		return &BalanceByAddress{}, nil
	case KindTransactionsCountByScriptHash:
		return &TransactionsCountByScriptHash{}, nil
	default:
		return nil, fmt.Errorf("reducer: unknown kind %q", c.Kind)
	}
}

// Bank is the ordered, built set of reducers a reducer-stage worker
// invokes for every block. Declaration order is part of the contract, even
// though every command produced is commutative per-key.
type Bank []Reducer

// Build constructs a Bank from configs in declaration order.
func Build(configs []Config, chain *crosscut.ChainWellKnownInfo) (Bank, error) {
	bank := make(Bank, 0, len(configs))
	for _, c := range configs {
		r, err := c.Build(chain)
		if err != nil {
			return nil, err
		}
		bank = append(bank, r)
	}
	return bank, nil
}
