package qrc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ControlValue addresses one control inside a named component.
type ControlValue struct {
	Name  string  `json:"Name"`
	Value any     `json:"Value,omitempty"`
	Ramp  float64 `json:"Ramp,omitempty"`
}

// ControlMethods wraps the Control.* command family. All wrappers are thin
// parameter builders over Call.
type ControlMethods struct {
	core *Core
}

// Get returns the values of one or more named controls.
func (m ControlMethods) Get(ctx context.Context, names ...string) (json.RawMessage, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: Control.Get needs at least one control name", ErrInvalidArgs)
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, fmt.Errorf("%w: Control.Get got an empty control name", ErrInvalidArgs)
		}
	}
	return m.core.Call(ctx, "Control.Get", names)
}

// Set sets a named control to a value.
func (m ControlMethods) Set(ctx context.Context, name string, value any) (json.RawMessage, error) {
	if strings.TrimSpace(name) == "" || value == nil {
		return nil, fmt.Errorf("%w: Control.Set needs a name and a value", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "Control.Set", map[string]any{"Name": name, "Value": value})
}

// SetRamp sets a named control to a value over a ramp period in seconds.
func (m ControlMethods) SetRamp(ctx context.Context, name string, value any, ramp float64) (json.RawMessage, error) {
	if strings.TrimSpace(name) == "" || value == nil {
		return nil, fmt.Errorf("%w: Control.Set needs a name and a value", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "Control.Set", map[string]any{"Name": name, "Value": value, "Ramp": ramp})
}

// ComponentMethods wraps the Component.* command family.
type ComponentMethods struct {
	core *Core
}

// Get returns the values of specific controls within a named component.
func (m ComponentMethods) Get(ctx context.Context, name string, controls []ControlValue) (json.RawMessage, error) {
	if strings.TrimSpace(name) == "" || len(controls) == 0 {
		return nil, fmt.Errorf("%w: Component.Get needs a component name and controls", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "Component.Get", map[string]any{"Name": name, "Controls": controls})
}

// GetControls returns all controls and their values in a named component.
func (m ComponentMethods) GetControls(ctx context.Context, name string) (json.RawMessage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: Component.GetControls needs a component name", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "Component.GetControls", map[string]any{"Name": name})
}

// GetComponents lists all named components in the design with type and
// properties.
func (m ComponentMethods) GetComponents(ctx context.Context) (json.RawMessage, error) {
	return m.core.Call(ctx, "Component.GetComponents", map[string]any{})
}

// Set sets one or more controls of a named component; the result lists any
// unknown controls after processing.
func (m ComponentMethods) Set(ctx context.Context, name string, controls []ControlValue) (json.RawMessage, error) {
	if strings.TrimSpace(name) == "" || len(controls) == 0 {
		return nil, fmt.Errorf("%w: Component.Set needs a component name and controls", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "Component.Set", map[string]any{"Name": name, "Control": controls})
}

// ChangeGroupMethods wraps the ChangeGroup.* command family.
type ChangeGroupMethods struct {
	core *Core
}

func (m ChangeGroupMethods) checkID(op, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s needs a change group id", ErrInvalidArgs, op)
	}
	return nil
}

func (m ChangeGroupMethods) AddControl(ctx context.Context, id string, controls []string) (json.RawMessage, error) {
	if err := m.checkID("ChangeGroup.AddControl", id); err != nil {
		return nil, err
	}
	return m.core.Call(ctx, "ChangeGroup.AddControl", map[string]any{"Id": id, "Controls": controls})
}

func (m ChangeGroupMethods) AddComponentControl(ctx context.Context, id, component string, controls []ControlValue) (json.RawMessage, error) {
	if err := m.checkID("ChangeGroup.AddComponentControl", id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(component) == "" {
		return nil, fmt.Errorf("%w: ChangeGroup.AddComponentControl needs a component name", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "ChangeGroup.AddComponentControl", map[string]any{
		"Id":        id,
		"Component": map[string]any{"Name": component, "Controls": controls},
	})
}

func (m ChangeGroupMethods) Remove(ctx context.Context, id string, controls []string) (json.RawMessage, error) {
	if err := m.checkID("ChangeGroup.Remove", id); err != nil {
		return nil, err
	}
	return m.core.Call(ctx, "ChangeGroup.Remove", map[string]any{"Id": id, "Controls": controls})
}

func (m ChangeGroupMethods) Poll(ctx context.Context, id string) (json.RawMessage, error) {
	if err := m.checkID("ChangeGroup.Poll", id); err != nil {
		return nil, err
	}
	return m.core.Call(ctx, "ChangeGroup.Poll", map[string]any{"Id": id})
}

func (m ChangeGroupMethods) Destroy(ctx context.Context, id string) (json.RawMessage, error) {
	if err := m.checkID("ChangeGroup.Destroy", id); err != nil {
		return nil, err
	}
	return m.core.Call(ctx, "ChangeGroup.Destroy", map[string]any{"Id": id})
}

func (m ChangeGroupMethods) Invalidate(ctx context.Context, id string) (json.RawMessage, error) {
	if err := m.checkID("ChangeGroup.Invalidate", id); err != nil {
		return nil, err
	}
	return m.core.Call(ctx, "ChangeGroup.Invalidate", map[string]any{"Id": id})
}

func (m ChangeGroupMethods) Clear(ctx context.Context, id string) (json.RawMessage, error) {
	if err := m.checkID("ChangeGroup.Clear", id); err != nil {
		return nil, err
	}
	return m.core.Call(ctx, "ChangeGroup.Clear", map[string]any{"Id": id})
}

// AutoPoll subscribes the group to server-side polling at a fixed rate in
// seconds. Poll results arrive as unsolicited frames on the event sink.
func (m ChangeGroupMethods) AutoPoll(ctx context.Context, id string, rate int) (json.RawMessage, error) {
	if err := m.checkID("ChangeGroup.AutoPoll", id); err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: ChangeGroup.AutoPoll needs a positive rate", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "ChangeGroup.AutoPoll", map[string]any{"Id": id, "Rate": rate})
}

// MixerMethods wraps the Mixer.* command family. Inputs/Outputs/Cues use the
// QRC channel string syntax ("1 2 3", "1-6", "*").
type MixerMethods struct {
	core *Core
}

func (m MixerMethods) call(ctx context.Context, op string, params map[string]any) (json.RawMessage, error) {
	name, _ := params["Name"].(string)
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: %s needs a mixer name", ErrInvalidArgs, op)
	}
	return m.core.Call(ctx, op, params)
}

func (m MixerMethods) SetCrossPointGain(ctx context.Context, name, inputs, outputs string, gain, ramp float64) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetCrossPointGain", map[string]any{
		"Name": name, "Inputs": inputs, "Outputs": outputs, "Value": gain, "Ramp": ramp,
	})
}

func (m MixerMethods) SetCrossPointDelay(ctx context.Context, name, inputs, outputs string, delay, ramp float64) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetCrossPointDelay", map[string]any{
		"Name": name, "Inputs": inputs, "Outputs": outputs, "Value": delay, "Ramp": ramp,
	})
}

func (m MixerMethods) SetCrossPointMute(ctx context.Context, name, inputs, outputs string, mute bool) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetCrossPointMute", map[string]any{
		"Name": name, "Inputs": inputs, "Outputs": outputs, "Value": mute,
	})
}

func (m MixerMethods) SetCrossPointSolo(ctx context.Context, name, inputs, outputs string, solo bool) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetCrossPointSolo", map[string]any{
		"Name": name, "Inputs": inputs, "Outputs": outputs, "Value": solo,
	})
}

func (m MixerMethods) SetInputGain(ctx context.Context, name, inputs string, gain, ramp float64) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetInputGain", map[string]any{
		"Name": name, "Inputs": inputs, "Value": gain, "Ramp": ramp,
	})
}

func (m MixerMethods) SetInputMute(ctx context.Context, name, inputs string, mute bool) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetInputMute", map[string]any{
		"Name": name, "Inputs": inputs, "Value": mute,
	})
}

func (m MixerMethods) SetInputSolo(ctx context.Context, name, inputs string, solo bool) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetInputSolo", map[string]any{
		"Name": name, "Inputs": inputs, "Value": solo,
	})
}

func (m MixerMethods) SetOutputGain(ctx context.Context, name, outputs string, gain, ramp float64) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetOutputGain", map[string]any{
		"Name": name, "Outputs": outputs, "Value": gain, "Ramp": ramp,
	})
}

func (m MixerMethods) SetOutputMute(ctx context.Context, name, outputs string, mute bool) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetOutputMute", map[string]any{
		"Name": name, "Outputs": outputs, "Value": mute,
	})
}

func (m MixerMethods) SetCueMute(ctx context.Context, name, cues string, mute bool) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetCueMute", map[string]any{
		"Name": name, "Cues": cues, "Value": mute,
	})
}

func (m MixerMethods) SetCueGain(ctx context.Context, name, cues string, gain, ramp float64) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetCueGain", map[string]any{
		"Name": name, "Cues": cues, "Value": gain, "Ramp": ramp,
	})
}

func (m MixerMethods) SetInputCueEnable(ctx context.Context, name, cues, inputs string, enable bool) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetInputCueEnable", map[string]any{
		"Name": name, "Cues": cues, "Inputs": inputs, "Value": enable,
	})
}

func (m MixerMethods) SetInputCueAfl(ctx context.Context, name, cues, inputs string, afl bool) (json.RawMessage, error) {
	return m.call(ctx, "Mixer.SetInputCueAfl", map[string]any{
		"Name": name, "Cues": cues, "Inputs": inputs, "Value": afl,
	})
}

// LoopPlayerMethods wraps the LoopPlayer.* command family.
type LoopPlayerMethods struct {
	core *Core
}

// LoopPlayerFile names one file and the output channel it plays on.
type LoopPlayerFile struct {
	Name    string `json:"Name"`
	Mode    string `json:"Mode,omitempty"`
	Output  int    `json:"Output"`
	Channel string `json:"Channel,omitempty"`
}

func (m LoopPlayerMethods) Start(ctx context.Context, name string, startTime int64, files []LoopPlayerFile, loop, logResult bool, seek int) (json.RawMessage, error) {
	if strings.TrimSpace(name) == "" || len(files) == 0 {
		return nil, fmt.Errorf("%w: LoopPlayer.Start needs a player name and files", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "LoopPlayer.Start", map[string]any{
		"Files":     files,
		"Name":      name,
		"StartTime": startTime,
		"Loop":      loop,
		"Log":       logResult,
		"Seek":      seek,
	})
}

func (m LoopPlayerMethods) Stop(ctx context.Context, name string, outputs []int, logResult bool) (json.RawMessage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: LoopPlayer.Stop needs a player name", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "LoopPlayer.Stop", map[string]any{"Name": name, "Outputs": outputs, "Log": logResult})
}

func (m LoopPlayerMethods) Cancel(ctx context.Context, name string, outputs []int, logResult bool) (json.RawMessage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: LoopPlayer.Cancel needs a player name", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "LoopPlayer.Cancel", map[string]any{"Name": name, "Outputs": outputs, "Log": logResult})
}

// SnapshotMethods wraps the Snapshot.* command family.
type SnapshotMethods struct {
	core *Core
}

func (m SnapshotMethods) Load(ctx context.Context, bankName string, bank int, ramp float64) (json.RawMessage, error) {
	if strings.TrimSpace(bankName) == "" {
		return nil, fmt.Errorf("%w: Snapshot.Load needs a bank name", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "Snapshot.Load", map[string]any{"Name": bankName, "Bank": bank, "Ramp": ramp})
}

func (m SnapshotMethods) Save(ctx context.Context, bankName string, bank int) (json.RawMessage, error) {
	if strings.TrimSpace(bankName) == "" {
		return nil, fmt.Errorf("%w: Snapshot.Save needs a bank name", ErrInvalidArgs)
	}
	return m.core.Call(ctx, "Snapshot.Save", map[string]any{"Name": bankName, "Bank": bank})
}
