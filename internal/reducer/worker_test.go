package reducer

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/stage"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

func encodeFixture(t *testing.T, b *wire.MultiEraBlock) []byte {
	t.Helper()
	raw, err := wire.EncodeBlock(b)
	if err != nil {
		t.Fatalf("EncodeBlock: %v", err)
	}
	return raw
}

func drain(out chan model.CRDTCommand) []model.CRDTCommand {
	close(out)
	var cmds []model.CRDTCommand
	for c := range out {
		cmds = append(cmds, c)
	}
	return cmds
}

func TestWorkerBracketsBlockWithStartingAndFinished(t *testing.T) {
	block := &wire.MultiEraBlock{
		Slot: 10,
		Txs: []wire.Tx{
			{Hash: "tx1", Outputs: []wire.TxOutput{{Address: "addr1", Value: 5}}},
		},
	}
	point := model.NewPoint(10, []byte{0xaa})
	in := make(chan model.EnrichedBlockPayload, 1)
	in <- model.RollForward(point, encodeFixture(t, block), nil)
	close(in)

	out := make(chan model.CRDTCommand, 10)
	w := &Worker{
		Bank:   Bank{&UtxoByAddress{}},
		Input:  in,
		Output: out,
		Log:    zerolog.Nop(),
	}

	outcome, err := w.Work(context.Background())
	if err != nil {
		t.Fatalf("Work: %v", err)
	}
	if outcome != stage.Partial {
		t.Fatalf("expected Partial outcome, got %v", outcome)
	}

	cmds := drain(out)
	if len(cmds) < 2 {
		t.Fatalf("expected at least BlockStarting and BlockFinished, got %d commands", len(cmds))
	}
	if cmds[0].Kind != model.BlockStartingCmd {
		t.Fatalf("expected first command to be BlockStarting, got %v", cmds[0].Kind)
	}
	if cmds[len(cmds)-1].Kind != model.BlockFinishedCmd {
		t.Fatalf("expected last command to be BlockFinished, got %v", cmds[len(cmds)-1].Kind)
	}
}

func TestWorkerEmptyBankStillBrackets(t *testing.T) {
	block := &wire.MultiEraBlock{Slot: 1}
	point := model.NewPoint(1, []byte{0x01})
	in := make(chan model.EnrichedBlockPayload, 1)
	in <- model.RollForward(point, encodeFixture(t, block), nil)
	close(in)

	out := make(chan model.CRDTCommand, 10)
	w := &Worker{Bank: nil, Input: in, Output: out, Log: zerolog.Nop()}

	if _, err := w.Work(context.Background()); err != nil {
		t.Fatalf("Work: %v", err)
	}

	cmds := drain(out)
	if len(cmds) != 2 {
		t.Fatalf("expected exactly BlockStarting+BlockFinished for an empty bank, got %d", len(cmds))
	}
}

func TestWorkerRollBackSkipsBank(t *testing.T) {
	point := model.NewPoint(5, []byte{0x05})
	in := make(chan model.EnrichedBlockPayload, 1)
	in <- model.RollBack(point)
	close(in)

	out := make(chan model.CRDTCommand, 10)
	w := &Worker{Bank: Bank{&UtxoByAddress{}}, Input: in, Output: out, Log: zerolog.Nop()}

	if _, err := w.Work(context.Background()); err != nil {
		t.Fatalf("Work: %v", err)
	}
	close(out)
	for range out {
		t.Fatalf("expected no commands emitted for a rollback payload")
	}
}

func TestWorkerDoneOnInputClosed(t *testing.T) {
	in := make(chan model.EnrichedBlockPayload)
	close(in)
	w := &Worker{Input: in, Output: make(chan model.CRDTCommand, 1), Log: zerolog.Nop()}

	outcome, err := w.Work(context.Background())
	if err != nil {
		t.Fatalf("Work: %v", err)
	}
	if outcome != stage.Done {
		t.Fatalf("expected Done outcome on closed input channel")
	}
}

func TestWorkerTwoBlocksAccumulatePNCounter(t *testing.T) {
	blockA := &wire.MultiEraBlock{Slot: 1, Txs: []wire.Tx{{Hash: "tx1"}}}
	blockB := &wire.MultiEraBlock{Slot: 2, Txs: []wire.Tx{{Hash: "tx2"}, {Hash: "tx3"}}}

	in := make(chan model.EnrichedBlockPayload, 2)
	in <- model.RollForward(model.NewPoint(1, []byte{0x01}), encodeFixture(t, blockA), nil)
	in <- model.RollForward(model.NewPoint(2, []byte{0x02}), encodeFixture(t, blockB), nil)
	close(in)

	out := make(chan model.CRDTCommand, 20)
	w := &Worker{Bank: Bank{&TotalTransactionsCount{}}, Input: in, Output: out, Log: zerolog.Nop()}

	for i := 0; i < 2; i++ {
		if _, err := w.Work(context.Background()); err != nil {
			t.Fatalf("Work: %v", err)
		}
	}

	var total int64
	for _, c := range drain(out) {
		if c.Kind == model.PNCounterCmd {
			total += c.Delta
		}
	}
	if total != 3 {
		t.Fatalf("expected total transaction count 3 across two blocks, got %d", total)
	}
}
