package model

// CommandKind discriminates a CRDTCommand. The set is closed and dispatch is
// by exhaustive switch, not by interface method, so storage backends cannot
// silently ignore a new variant.
type CommandKind int

const (
	BlockStartingCmd CommandKind = iota
	GrowOnlySetAddCmd
	TwoPhaseSetAddCmd
	TwoPhaseSetRemoveCmd
	SetAddCmd
	SetRemoveCmd
	LastWriteWinsCmd
	AnyWriteWinsCmd
	PNCounterCmd
	BlockFinishedCmd
)

func (k CommandKind) String() string {
	switch k {
	case BlockStartingCmd:
		return "BlockStarting"
	case GrowOnlySetAddCmd:
		return "GrowOnlySetAdd"
	case TwoPhaseSetAddCmd:
		return "TwoPhaseSetAdd"
	case TwoPhaseSetRemoveCmd:
		return "TwoPhaseSetRemove"
	case SetAddCmd:
		return "SetAdd"
	case SetRemoveCmd:
		return "SetRemove"
	case LastWriteWinsCmd:
		return "LastWriteWins"
	case AnyWriteWinsCmd:
		return "AnyWriteWins"
	case PNCounterCmd:
		return "PNCounter"
	case BlockFinishedCmd:
		return "BlockFinished"
	default:
		return "Unknown"
	}
}

// CRDTCommand is a store-neutral mutation. All payloads are owned strings;
// keys are dot-separated hierarchical namespaces. Commands between a
// matching BlockStarting/BlockFinished pair form one block's effect set.
type CRDTCommand struct {
	Kind   CommandKind
	Point  Point  // BlockStarting, BlockFinished
	Key    string
	Member string // set member, AnyWriteWins value, or LastWriteWins member
	Score  int64  // LastWriteWins timestamp
	Delta  int64  // PNCounter signed delta
}

func BlockStarting(p Point) CRDTCommand { return CRDTCommand{Kind: BlockStartingCmd, Point: p} }
func BlockFinished(p Point) CRDTCommand { return CRDTCommand{Kind: BlockFinishedCmd, Point: p} }

func GrowOnlySetAdd(key, member string) CRDTCommand {
	return CRDTCommand{Kind: GrowOnlySetAddCmd, Key: key, Member: member}
}

func TwoPhaseSetAdd(key, member string) CRDTCommand {
	return CRDTCommand{Kind: TwoPhaseSetAddCmd, Key: key, Member: member}
}

func TwoPhaseSetRemove(key, member string) CRDTCommand {
	return CRDTCommand{Kind: TwoPhaseSetRemoveCmd, Key: key, Member: member}
}

func SetAdd(key, member string) CRDTCommand {
	return CRDTCommand{Kind: SetAddCmd, Key: key, Member: member}
}

func SetRemove(key, member string) CRDTCommand {
	return CRDTCommand{Kind: SetRemoveCmd, Key: key, Member: member}
}

func LastWriteWins(key, member string, ts int64) CRDTCommand {
	return CRDTCommand{Kind: LastWriteWinsCmd, Key: key, Member: member, Score: ts}
}

func AnyWriteWins(key, value string) CRDTCommand {
	return CRDTCommand{Kind: AnyWriteWinsCmd, Key: key, Member: value}
}

func PNCounter(key string, delta int64) CRDTCommand {
	return CRDTCommand{Kind: PNCounterCmd, Key: key, Delta: delta}
}
