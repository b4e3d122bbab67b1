package model

import "fmt"

// TxoRef identifies a transaction output by the hash of its producing
// transaction and its index within that transaction's output list. Its
// string form, "txhash#index", is also the reference format reducers use
// when they key store entries by spent/produced outputs.
type TxoRef struct {
	TxHash string
	Index  uint32
}

func (r TxoRef) String() string {
	return fmt.Sprintf("%s#%d", r.TxHash, r.Index)
}

// ResolvedOutput is the address/value pair a TxoRef resolves to.
type ResolvedOutput struct {
	Address string
	Value   uint64
}

// BlockContext maps every output consumed by a block's inputs to its
// resolved address and value. It is populated by the block-fetch
// collaborator and is read-only once handed to the reducer stage.
type BlockContext map[TxoRef]ResolvedOutput

// Resolve looks up the output an input reference was spending.
func (c BlockContext) Resolve(ref TxoRef) (ResolvedOutput, bool) {
	out, ok := c[ref]
	return out, ok
}
