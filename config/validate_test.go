package config

import "testing"

func TestValidateRejectsMissingPeer(t *testing.T) {
	cfg := DefaultMainnet()
	cfg.Peer.Addr = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for empty peer.addr")
	}
}

func TestValidateRejectsUnknownReducerKind(t *testing.T) {
	cfg := DefaultMainnet()
	cfg.Reducers.Kinds = []string{"NotARealReducer"}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for unknown reducer kind")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := Validate(DefaultMainnet()); err != nil {
		t.Fatalf("expected default mainnet config to validate, got %v", err)
	}
	if err := Validate(DefaultTestnet()); err != nil {
		t.Fatalf("expected default testnet config to validate, got %v", err)
	}
}

func TestBuildIntersectConfigVariants(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		wantErr bool
	}{
		{"empty defaults to origin", "", false},
		{"origin", "origin", false},
		{"tip", "tip", false},
		{"point", "point:10,aa", false},
		{"malformed point", "point:not-a-point", true},
		{"garbage", "banana", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildIntersectConfig(IntersectConfig{Policy: tt.policy})
			if tt.wantErr && err == nil {
				t.Fatalf("expected an error for policy %q", tt.policy)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error for policy %q: %v", tt.policy, err)
			}
		})
	}
}

func TestBuildFinalizeConfigNilWhenUnset(t *testing.T) {
	got, err := BuildFinalizeConfig(FinalizeConfig{})
	if err != nil {
		t.Fatalf("BuildFinalizeConfig: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil finalize config when unset")
	}
}

func TestBuildFinalizeConfigMaxBlocks(t *testing.T) {
	got, err := BuildFinalizeConfig(FinalizeConfig{MaxBlocks: 5})
	if err != nil {
		t.Fatalf("BuildFinalizeConfig: %v", err)
	}
	if got == nil || got.MaxBlocks != 5 {
		t.Fatalf("expected MaxBlocks=5, got %v", got)
	}
}
