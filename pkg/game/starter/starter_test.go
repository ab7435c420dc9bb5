package starter

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"frontier/pkg/game/config"
	"frontier/pkg/game/i18n"
	"frontier/pkg/game/mapgen"
	"frontier/pkg/game/ruleset"
	"frontier/pkg/game/state"
)

func newStarter(t *testing.T, available uint64) *Starter {
	t.Helper()
	c, err := ruleset.LoadBundled()
	if err != nil {
		t.Fatalf("LoadBundled() error = %v", err)
	}
	return &Starter{
		Rulesets:  c,
		Generator: mapgen.DefaultGenerator,
		Settings:  config.NewSettingsManager(nil),
		Memory: func(ctx context.Context) (uint64, error) {
			return available, nil
		},
	}
}

func TestSetupFromSettings(t *testing.T) {
	p := SetupFromSettings(config.DefaultSettings(), QuickDifficulty)
	if p.Difficulty != QuickDifficulty || p.BaseRuleset != ruleset.GodsAndKings {
		t.Errorf("SetupFromSettings(defaults) = %+v, want Chieftain on %s", p, ruleset.GodsAndKings)
	}

	s := config.DefaultSettings()
	s.LastGameSetup = &state.GameParameters{BaseRuleset: ruleset.Vanilla, Difficulty: "King", MapWidth: 10, MapHeight: 8}
	p = SetupFromSettings(s, "")
	if p.BaseRuleset != ruleset.Vanilla || p.Difficulty != "King" {
		t.Errorf("SetupFromSettings(last) = %+v, want the last setup unchanged", p)
	}
}

func TestStartNewGame_RecordsSetup(t *testing.T) {
	s := newStarter(t, 1<<40)
	params := SetupFromSettings(s.Settings.Get(), QuickDifficulty)
	g, err := s.StartNewGame(context.Background(), params)
	if err != nil {
		t.Fatalf("StartNewGame() error = %v", err)
	}
	if g.Map.Cols() != params.MapWidth || g.Turn != 1 || g.ID == "" {
		t.Errorf("game = %+v, want a turn 1 game on a %d wide map", g, params.MapWidth)
	}
	if g.TileSet != s.Settings.Get().TileSet {
		t.Errorf("TileSet = %q, want the settings tile set", g.TileSet)
	}
	last := s.Settings.Get().LastGameSetup
	if last == nil || last.Difficulty != QuickDifficulty {
		t.Errorf("LastGameSetup = %+v, want the started setup", last)
	}
}

func TestStartNewGame_FillsMissingVictoryTypes(t *testing.T) {
	s := newStarter(t, 1<<40)
	params := state.GameParameters{Difficulty: "King", BaseRuleset: ruleset.GodsAndKings, Players: 2, MapWidth: 10, MapHeight: 8}
	g, err := s.StartNewGame(context.Background(), params)
	if err != nil {
		t.Fatalf("StartNewGame() error = %v", err)
	}
	rs, _ := s.Rulesets.Get(ruleset.GodsAndKings)
	got := g.Parameters.VictoryTypes
	if len(rs.Victories) == 0 || len(got) != len(rs.Victories) {
		t.Fatalf("victory types = %v, want %v", got, rs.Victories)
	}
	for i := range got {
		if got[i] != rs.Victories[i] {
			t.Errorf("victory types = %v, want %v", got, rs.Victories)
			break
		}
	}
	if last := s.Settings.Get().LastGameSetup; last == nil || len(last.VictoryTypes) != len(got) {
		t.Errorf("LastGameSetup = %+v, want the filled victory types", last)
	}
	if params.VictoryTypes != nil {
		t.Error("StartNewGame() modified the caller's parameters")
	}

	params.VictoryTypes = []string{"Science"}
	g, err = s.StartNewGame(context.Background(), params)
	if err != nil {
		t.Fatalf("StartNewGame() error = %v", err)
	}
	if got := g.Parameters.VictoryTypes; len(got) != 1 || got[0] != "Science" {
		t.Errorf("victory types = %v, want the chosen [Science]", got)
	}
}

func TestStartNewGame_NotEnoughMemory(t *testing.T) {
	s := newStarter(t, 1024)
	_, err := s.StartNewGame(context.Background(), config.DefaultGameParameters())
	if !errors.Is(err, ErrNotEnoughMemory) {
		t.Fatalf("StartNewGame() error = %v, want ErrNotEnoughMemory", err)
	}
	if got := UserMessage(err); got != i18n.Tr("ERR_NOT_ENOUGH_MEMORY") {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestStartNewGame_UnknownRulesetIsShowable(t *testing.T) {
	s := newStarter(t, 1<<40)
	params := config.DefaultGameParameters()
	params.BaseRuleset = "Missing Ruleset"
	_, err := s.StartNewGame(context.Background(), params)

	var showable *ShowableError
	if !errors.As(err, &showable) {
		t.Fatalf("StartNewGame() error = %v, want a ShowableError", err)
	}
	if got := UserMessage(err); got != showable.Message {
		t.Errorf("UserMessage() = %q, want %q", got, showable.Message)
	}
}

func TestCheckMemory_ProbeFailureIsIgnored(t *testing.T) {
	s := &Starter{Memory: func(ctx context.Context) (uint64, error) {
		return 0, fmt.Errorf("unsupported")
	}}
	if err := s.CheckMemory(context.Background(), 100); err != nil {
		t.Errorf("CheckMemory() error = %v, want nil", err)
	}
}

func TestUserMessage_Other(t *testing.T) {
	if got := UserMessage(errors.New("boom")); got != i18n.Tr("ERR_QUICKSTART") {
		t.Errorf("UserMessage() = %q, want the generic quickstart message", got)
	}
}
