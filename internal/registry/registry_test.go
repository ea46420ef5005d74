package registry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	Word  string `json:"word" jsonschema:"description=Word to echo"`
	Times int    `json:"times,omitempty" jsonschema:"minimum=1,maximum=3,default=1"`
}

func echoHandler(_ context.Context, args json.RawMessage) (any, error) {
	var a echoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return map[string]any{"word": a.Word, "times": a.Times}, nil
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := New("Test Server", "1.0", "test registry")
	require.NoError(t, err)

	require.NoError(t, reg.Register(Capability{
		Name:        "echo",
		Kind:        KindTool,
		Description: "Echo a word",
		Params:      ParamsFor[echoArgs](),
		Handler:     echoHandler,
	}))
	require.NoError(t, reg.Register(Capability{
		Name:        "broken",
		Kind:        KindResource,
		Description: "Always fails",
		Handler: func(context.Context, json.RawMessage) (any, error) {
			return nil, errors.New("backend exploded")
		},
	}))
	return reg
}

func TestNew_Version(t *testing.T) {
	for _, v := range []string{"1.0", "v1.0", "1.2.3", "v2.0.0-rc.1"} {
		if _, err := New("s", v, ""); err != nil {
			t.Errorf("New(%q) unexpected error: %v", v, err)
		}
	}
	for _, v := range []string{"", "one", "1.x"} {
		if _, err := New("s", v, ""); err == nil {
			t.Errorf("New(%q) expected error", v)
		}
	}
}

func TestRegister_Rejects(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.Register(Capability{Name: "echo", Kind: KindTool, Handler: echoHandler})
	assert.ErrorContains(t, err, "already registered")

	err = reg.Register(Capability{Name: "", Kind: KindTool, Handler: echoHandler})
	assert.Error(t, err)

	err = reg.Register(Capability{Name: "x", Kind: "prompt", Handler: echoHandler})
	assert.ErrorContains(t, err, "unknown kind")

	err = reg.Register(Capability{Name: "y", Kind: KindTool})
	assert.ErrorContains(t, err, "no handler")
}

func TestDescribe_Sorted(t *testing.T) {
	reg := newTestRegistry(t)

	descs := reg.Describe()
	require.Len(t, descs, 2)
	assert.Equal(t, "broken", descs[0].Name)
	assert.Equal(t, "echo", descs[1].Name)
	require.NotNil(t, descs[1].Parameters)

	data, err := json.Marshal(descs[1].Parameters)
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, []any{"word"}, schema["required"])
	props := schema["properties"].(map[string]any)
	assert.EqualValues(t, 1, props["times"].(map[string]any)["default"])

	assert.Equal(t, []string{"echo"}, reg.Names(KindTool))
	assert.Equal(t, []string{"broken"}, reg.Names(KindResource))
}

func TestDispatch(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	out, err := reg.Dispatch(ctx, "echo", json.RawMessage(`{"word": "hi", "times": 2}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"word": "hi", "times": 2}, out)
}

func TestDispatch_InvalidArgs(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	for _, args := range []string{
		`{"times": 2}`,
		`{"word": "hi", "times": 9}`,
		`{"word": 7}`,
		`{"word": "hi", "extra": true}`,
		`{"word":`,
		``,
	} {
		out, err := reg.Dispatch(ctx, "echo", json.RawMessage(args))
		require.NoError(t, err, "args %q", args)
		m, ok := out.(map[string]any)
		require.True(t, ok, "args %q: expected error map, got %T", args, out)
		assert.Equal(t, InvalidArgsStatus, m["status"], "args %q", args)
		assert.Contains(t, m["error"], "invalid arguments", "args %q", args)
	}
}

func TestDispatch_HandlerError(t *testing.T) {
	reg := newTestRegistry(t)

	out, err := reg.Dispatch(context.Background(), "broken", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "backend exploded", "status": 500}, out)
}

func TestDispatch_Unknown(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Dispatch(context.Background(), "ech", nil)
	var unknown *UnknownCapabilityError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "ech", unknown.Name)
	assert.Equal(t, []string{"echo"}, unknown.Suggestions)
	assert.Contains(t, err.Error(), `did you mean echo?`)

	_, err = reg.Dispatch(context.Background(), "zzz", nil)
	require.True(t, errors.As(err, &unknown))
	assert.Empty(t, unknown.Suggestions)
}
