package script

import (
	"fmt"
	"math"
	"sync/atomic"

	lua "github.com/Shopify/go-lua"

	"github.com/vovakirdan/tui-tower/internal/game"
)

// pushValue marshals a native sensed value onto the Lua stack and
// returns the number of pushed values (always 1).
//
// Spaces collapse to nil when they hold nothing walk-blocking: an
// empty cell and the stairs cell are both "nothing to see" from a
// script's point of view. Occupied cells and walls become space
// proxies. Sequences marshal element-wise, recursively.
func pushValue(l *lua.State, v any) int {
	switch value := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(value)
	case int:
		l.PushInteger(value)
	case float64:
		l.PushNumber(value)
	case string:
		l.PushString(value)
	case game.Space:
		pushSpace(l, value)
	case game.RelativeDirection:
		l.PushString(value.String())
	case game.Direction:
		l.PushString(value.String())
	case []game.Space:
		l.NewTable()
		for i, sp := range value {
			pushValue(l, sp)
			l.RawSetInt(-2, i+1)
		}
	case []any:
		l.NewTable()
		for i, elem := range value {
			pushValue(l, elem)
			l.RawSetInt(-2, i+1)
		}
	default:
		lua.Errorf(l, "%s", fmt.Sprintf("cannot marshal %T into Lua", v))
	}
	return 1
}

func pushSpace(l *lua.State, sp game.Space) {
	if sp.IsEmpty() || sp.IsStairs() {
		l.PushNil()
		return
	}
	l.PushUserData(sp)
	lua.SetMetaTableNamed(l, spaceTypeName)
}

// collectArgs marshals the Lua call arguments from index on into
// native values. Primitives pass through unchanged; a space proxy
// unwraps to its native Space; a Lua function is pinned and wrapped
// as a native behavior callback (the form ability's golem driver).
func collectArgs(l *lua.State, from int) []any {
	var args []any
	for i := from; i <= l.Top(); i++ {
		args = append(args, toGo(l, i))
	}
	return args
}

func toGo(l *lua.State, index int) any {
	switch l.TypeOf(index) {
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return normalizeNumber(n)
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeUserData:
		return l.ToUserData(index)
	case lua.TypeFunction:
		return wrapCallback(l, index)
	default:
		return nil
	}
}

// normalizeNumber maps whole Lua numbers back to Go ints so native
// dispatch sees the integers it expects.
func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}

var callbackSeq atomic.Int64

// wrapCallback pins a Lua function in the registry and returns a
// native behavior that calls it with an adapted turn handle. A
// callback that raises simply takes no action that round.
func wrapCallback(l *lua.State, index int) game.Behavior {
	key := fmt.Sprintf("tower.callback.%d", callbackSeq.Add(1))
	l.PushValue(index)
	l.SetField(lua.RegistryIndex, key)

	return func(t *game.Turn) {
		base := l.Top()
		l.Field(lua.RegistryIndex, key)
		pushTurn(l, t)
		//nolint:errcheck // a failing callback idles for the round
		l.ProtectedCall(1, 0, 0)
		l.SetTop(base)
	}
}
