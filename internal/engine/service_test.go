package engine

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"tactics-server/internal/content"
	"tactics-server/internal/domain"
	"tactics-server/internal/infrastructure/storage"
	"tactics-server/pkg/api"
	"testing"
	"time"
)

func newTestService(t *testing.T) *GameService {
	t.Helper()
	catalog, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	svc, err := NewService(Config{
		Seed:          7,
		Scenario:      "crypt",
		ReplayDir:     t.TempDir(),
		RecordReplays: true,
	}, catalog)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func receive(t *testing.T, ch chan api.ServerResponse) api.ServerResponse {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a snapshot")
	}
	return api.ServerResponse{}
}

func findUnit(state api.ServerResponse, id string) *api.UnitView {
	for i := range state.Units {
		if state.Units[i].ID == id {
			return &state.Units[i]
		}
	}
	return nil
}

func command(action string, payload any) api.ClientCommand {
	cmd := api.ClientCommand{Token: "s1", Action: action}
	if payload != nil {
		cmd.Payload, _ = json.Marshal(payload)
	}
	return cmd
}

func TestService_MatchLifecycle(t *testing.T) {
	svc := newTestService(t)
	inbox := svc.Hub.Register("s1")

	if _, err := svc.CreateMatch(context.Background(), "s1"); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if _, err := svc.CreateMatch(context.Background(), "s1"); !errors.Is(err, ErrMatchExists) {
		t.Errorf("second match for the same session: %v", err)
	}

	state := receive(t, inbox)
	if state.ActiveUnitID != "Hero" || state.MyUnitID != "Hero" || len(state.Units) != 5 {
		t.Fatalf("initial state = %+v", state)
	}
	if len(state.Reachable) == 0 {
		t.Error("player turn must carry reachable cells")
	}
	if hero := findUnit(state, "Hero"); hero == nil || len(hero.Abilities[0].Targets) != 1 {
		t.Errorf("Fireball must target the adjacent Monster 3: %+v", hero)
	}

	if err := svc.ProcessCommand(command("END_TURN", nil)); err != nil {
		t.Fatal(err)
	}
	state = receive(t, inbox)

	// Все четверо врагов сходили, ход вернулся к герою
	if state.ActiveUnitID != "Hero" || state.Turn != 6 {
		t.Errorf("active = %s, turn = %d", state.ActiveUnitID, state.Turn)
	}
	if hero := findUnit(state, "Hero"); hero == nil || hero.HP != 95 {
		t.Errorf("Monster 3 must bite the hero once: %+v", hero)
	}
	if len(state.Logs) == 0 {
		t.Error("expected combat logs")
	}

	if err := svc.ProcessCommand(command("JUMP", nil)); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action: %v", err)
	}
	if err := svc.ProcessCommand(api.ClientCommand{Token: "nobody", Action: "INIT"}); !errors.Is(err, ErrNoMatch) {
		t.Errorf("unknown session: %v", err)
	}

	if len(svc.Instances()) != 1 {
		t.Errorf("instances = %d", len(svc.Instances()))
	}

	if err := svc.CloseMatch("s1"); err != nil {
		t.Fatalf("CloseMatch: %v", err)
	}
	files, _ := filepath.Glob(filepath.Join(svc.Replays.SaveDir, "*"+storage.FileExt))
	if len(files) != 1 {
		t.Fatalf("replay files = %v", files)
	}

	rs, err := storage.LoadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if rs.Scenario != "crypt" || rs.Seed != 7 || len(rs.Actions) != 1 || rs.Outcome != "ongoing" {
		t.Errorf("replay = %+v", rs)
	}
}

func TestInstance_Execute(t *testing.T) {
	svc := newTestService(t)
	inst, err := svc.newInstance("t", "crypt", 1, nil)
	if err != nil {
		t.Fatal(err)
	}

	exec := func(action domain.ActionType, payload string) {
		inst.Execute(domain.InternalCommand{Action: action, Payload: json.RawMessage(payload)})
	}

	exec(domain.ActionInit, "")
	if len(inst.Replay.Actions) != 0 {
		t.Error("INIT must not be recorded")
	}

	exec(domain.ActionMove, `{"x":1,"y":2}`)
	if p := inst.Match.Player(); p.Pos != (domain.Position{X: 1, Y: 2}) || p.Movement != 2 {
		t.Errorf("hero = %v, movement %d", p.Pos, p.Movement)
	}

	exec(domain.ActionMove, `{"x":9,"y":9}`)
	last := inst.Logs[len(inst.Logs)-1]
	if last.Type != "ERROR" {
		t.Errorf("rejected move must log an error, got %+v", last)
	}

	exec(domain.ActionCast, `{"x":1}`)
	if inst.Logs[len(inst.Logs)-1].Type != "ERROR" {
		t.Error("invalid payload must log an error")
	}

	if len(inst.Replay.Actions) != 3 {
		t.Errorf("recorded %d actions, want 3", len(inst.Replay.Actions))
	}

	inst.Publish()
	if snap := inst.Snapshot(); snap.MatchID != inst.ID || len(inst.Logs) != 0 {
		t.Errorf("snapshot = %+v, logs left %d", snap, len(inst.Logs))
	}
}

func TestService_PlaybackIsDeterministic(t *testing.T) {
	svc := newTestService(t)
	inst, err := svc.newInstance("t", "crypt", 11, nil)
	if err != nil {
		t.Fatal(err)
	}

	script := []domain.InternalCommand{
		{Action: domain.ActionCast, Payload: json.RawMessage(`{"ability":"Fireball","x":2,"y":1}`)},
		{Action: domain.ActionCast, Payload: json.RawMessage(`{"ability":"Ice Bolt","x":2,"y":1}`)},
		{Action: domain.ActionEndTurn},
		{Action: domain.ActionMove, Payload: json.RawMessage(`{"x":1,"y":3}`)},
		{Action: domain.ActionEndTurn},
	}
	for _, cmd := range script {
		inst.Execute(cmd)
	}
	inst.Replay.Outcome = string(inst.Match.Outcome())

	outcome, replayed, err := svc.Playback(inst.Replay)
	if err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if outcome != inst.Match.Outcome() {
		t.Errorf("outcome = %s, want %s", outcome, inst.Match.Outcome())
	}

	for _, u := range inst.Match.Roster() {
		r := replayed.Match.Unit(u.ID)
		if r == nil || r.HP != u.HP || r.Pos != u.Pos {
			t.Errorf("unit %s diverged: %+v vs %+v", u.ID, r, u)
		}
	}
	if m3 := replayed.Match.Unit("Monster 3"); m3 == nil || m3.HP != 65 {
		t.Errorf("Monster 3 = %+v", m3)
	}
}

func TestService_UnknownScenario(t *testing.T) {
	catalog, _ := content.Default()
	_, err := NewService(Config{Scenario: "moon"}, catalog)
	if !errors.Is(err, content.ErrUnknownScenario) {
		t.Errorf("err = %v", err)
	}
}

func TestNewService_CreatesReplayDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "replays")
	catalog, _ := content.Default()
	if _, err := NewService(Config{Scenario: "crypt", ReplayDir: dir, RecordReplays: true}, catalog); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("replay dir: %v", err)
	}
}
