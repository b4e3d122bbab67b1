package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ErrUndecodableBlock is fatal to the reducer stage: the block bytes emitted
// by block-fetch do not parse. Per spec.md this indicates upstream
// corruption, not a transient fault.
var ErrUndecodableBlock = fmt.Errorf("wire: block bytes undecodable")

// TxOutput is one output of a decoded transaction.
type TxOutput struct {
	Address    string `cbor:"0,keyasint"`
	Value      uint64 `cbor:"1,keyasint"`
	ScriptHash string `cbor:"2,keyasint,omitempty"`
}

// TxInput references a prior output this transaction consumes.
type TxInput struct {
	TxHash string `cbor:"0,keyasint"`
	Index  uint32 `cbor:"1,keyasint"`
}

// Tx is a decoded transaction: only the fields the reducer bank needs.
type Tx struct {
	Hash    string     `cbor:"0,keyasint"`
	Inputs  []TxInput  `cbor:"1,keyasint,omitempty"`
	Outputs []TxOutput `cbor:"2,keyasint,omitempty"`
}

// PoolDelegation is a stake delegation observed in a block, feeding
// PoolByStake.
type PoolDelegation struct {
	PoolID string `cbor:"0,keyasint"`
	Stake  uint64 `cbor:"1,keyasint"`
}

// MultiEraBlock is the common, era-agnostic view of a decoded block the
// reducer bank operates on. It is a deliberately minimal schema: the real
// ledger's block CBOR is a block-fetch/decode collaborator concern that is
// out of scope here (only the header format in spec.md §6 is bit-exact);
// this repo's own compact block encoding stands in for it.
type MultiEraBlock struct {
	Slot        uint64           `cbor:"0,keyasint"`
	Epoch       uint64           `cbor:"1,keyasint"`
	Txs         []Tx             `cbor:"2,keyasint,omitempty"`
	Delegations []PoolDelegation `cbor:"3,keyasint,omitempty"`
}

// DecodeBlock decodes raw block bytes into the common representation. A
// decode failure is fatal to the reducer stage.
func DecodeBlock(raw []byte) (*MultiEraBlock, error) {
	var b MultiEraBlock
	if err := cbor.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableBlock, err)
	}
	return &b, nil
}

// EncodeBlock is the inverse of DecodeBlock, used by tests and the in-memory
// block source to build fixtures.
func EncodeBlock(b *MultiEraBlock) ([]byte, error) {
	return cbor.Marshal(b)
}
