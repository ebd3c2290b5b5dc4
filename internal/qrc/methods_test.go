package qrc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/avtools/qrcctl/internal/testutil/testlog"
)

// capturingPeer answers the client's next request with an empty result and
// hands the parsed request envelope to the test.
func capturingPeer(t *testing.T, f *fakeCore) <-chan map[string]any {
	t.Helper()
	out := make(chan map[string]any, 1)
	go func() {
		raw := f.nextFrame(2 * time.Second)
		var env map[string]any
		if err := json.Unmarshal(raw, &env); err != nil {
			return
		}
		out <- env
		id := uint64(env["id"].(float64))
		f.send([]byte(fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"result":{}}`, id)))
	}()
	return out
}

func awaitEnvelope(t *testing.T, ch <-chan map[string]any) map[string]any {
	t.Helper()
	select {
	case env := <-ch:
		return env
	case <-time.After(2 * time.Second):
		t.Fatalf("peer saw no request")
		return nil
	}
}

func TestControlGetBuildsNameArrayParams(t *testing.T) {
	testlog.Start(t)
	f := startFakeCore(t)
	c := newConnectedCore(t, f, testConfig())
	peer := capturingPeer(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := c.Control.Get(ctx, "MainGain", "MainMute"); err != nil {
		t.Fatalf("Control.Get: %v", err)
	}

	env := awaitEnvelope(t, peer)
	if env["method"] != "Control.Get" {
		t.Fatalf("method: %v", env["method"])
	}
	params, ok := env["params"].([]any)
	if !ok || len(params) != 2 || params[0] != "MainGain" || params[1] != "MainMute" {
		t.Fatalf("params: %v", env["params"])
	}
}

func TestControlSetRampBuildsParams(t *testing.T) {
	testlog.Start(t)
	f := startFakeCore(t)
	c := newConnectedCore(t, f, testConfig())
	peer := capturingPeer(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := c.Control.SetRamp(ctx, "MainGain", -12.0, 2.5); err != nil {
		t.Fatalf("Control.SetRamp: %v", err)
	}

	env := awaitEnvelope(t, peer)
	params := env["params"].(map[string]any)
	if params["Name"] != "MainGain" || params["Value"] != -12.0 || params["Ramp"] != 2.5 {
		t.Fatalf("params: %v", params)
	}
}

func TestComponentSetUsesSingularControlKey(t *testing.T) {
	testlog.Start(t)
	f := startFakeCore(t)
	c := newConnectedCore(t, f, testConfig())
	peer := capturingPeer(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	controls := []ControlValue{{Name: "gain", Value: -6.0}}
	if _, err := c.Component.Set(ctx, "Mixer1", controls); err != nil {
		t.Fatalf("Component.Set: %v", err)
	}

	env := awaitEnvelope(t, peer)
	params := env["params"].(map[string]any)
	if params["Name"] != "Mixer1" {
		t.Fatalf("params: %v", params)
	}
	// The QRC command takes "Control", not "Controls", on Component.Set.
	if _, ok := params["Control"]; !ok {
		t.Fatalf("missing Control key: %v", params)
	}
}

func TestChangeGroupAddComponentControlNesting(t *testing.T) {
	testlog.Start(t)
	f := startFakeCore(t)
	c := newConnectedCore(t, f, testConfig())
	peer := capturingPeer(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	controls := []ControlValue{{Name: "mute"}}
	if _, err := c.ChangeGroup.AddComponentControl(ctx, "cg1", "Amp1", controls); err != nil {
		t.Fatalf("ChangeGroup.AddComponentControl: %v", err)
	}

	env := awaitEnvelope(t, peer)
	params := env["params"].(map[string]any)
	if params["Id"] != "cg1" {
		t.Fatalf("params: %v", params)
	}
	component := params["Component"].(map[string]any)
	if component["Name"] != "Amp1" {
		t.Fatalf("component: %v", component)
	}
	if _, ok := component["Controls"]; !ok {
		t.Fatalf("missing nested controls: %v", component)
	}
}

func TestMixerSetCrossPointGainParams(t *testing.T) {
	testlog.Start(t)
	f := startFakeCore(t)
	c := newConnectedCore(t, f, testConfig())
	peer := capturingPeer(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := c.Mixer.SetCrossPointGain(ctx, "MainMixer", "1 2", "*", -3.0, 1.0); err != nil {
		t.Fatalf("Mixer.SetCrossPointGain: %v", err)
	}

	env := awaitEnvelope(t, peer)
	if env["method"] != "Mixer.SetCrossPointGain" {
		t.Fatalf("method: %v", env["method"])
	}
	params := env["params"].(map[string]any)
	if params["Inputs"] != "1 2" || params["Outputs"] != "*" || params["Value"] != -3.0 || params["Ramp"] != 1.0 {
		t.Fatalf("params: %v", params)
	}
}

func TestSnapshotLoadParams(t *testing.T) {
	testlog.Start(t)
	f := startFakeCore(t)
	c := newConnectedCore(t, f, testConfig())
	peer := capturingPeer(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := c.Snapshot.Load(ctx, "Scenes", 3, 0.5); err != nil {
		t.Fatalf("Snapshot.Load: %v", err)
	}

	env := awaitEnvelope(t, peer)
	params := env["params"].(map[string]any)
	if params["Name"] != "Scenes" || params["Bank"] != 3.0 || params["Ramp"] != 0.5 {
		t.Fatalf("params: %v", params)
	}
}

func TestLogonParams(t *testing.T) {
	testlog.Start(t)
	f := startFakeCore(t)
	c := newConnectedCore(t, f, testConfig())
	peer := capturingPeer(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := c.Logon(ctx, "operator", "secret"); err != nil {
		t.Fatalf("Logon: %v", err)
	}

	env := awaitEnvelope(t, peer)
	if env["method"] != "Logon" {
		t.Fatalf("method: %v", env["method"])
	}
	params := env["params"].(map[string]any)
	if params["User"] != "operator" || params["Password"] != "secret" {
		t.Fatalf("params: %v", params)
	}
}

func TestWrapperValidationFailsWithoutNetwork(t *testing.T) {
	testlog.Start(t)
	c, err := NewCore("127.0.0.1:1710", DefaultConfig())
	if err != nil {
		t.Fatalf("new core: %v", err)
	}
	ctx := context.Background()

	if _, err := c.Control.Get(ctx); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("Control.Get: %v", err)
	}
	if _, err := c.Control.Set(ctx, "", 1); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("Control.Set: %v", err)
	}
	if _, err := c.Component.GetControls(ctx, " "); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("Component.GetControls: %v", err)
	}
	if _, err := c.ChangeGroup.Poll(ctx, ""); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("ChangeGroup.Poll: %v", err)
	}
	if _, err := c.ChangeGroup.AutoPoll(ctx, "cg1", 0); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("ChangeGroup.AutoPoll: %v", err)
	}
	if _, err := c.Mixer.SetInputMute(ctx, "", "1", true); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("Mixer.SetInputMute: %v", err)
	}
	if _, err := c.LoopPlayer.Start(ctx, "", 0, nil, false, false, 0); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("LoopPlayer.Start: %v", err)
	}
	if _, err := c.Snapshot.Save(ctx, "", 1); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("Snapshot.Save: %v", err)
	}
}
