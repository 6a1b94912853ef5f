// Package custom bridges user Lua scripts into content sources.
package custom

import (
	"context"
	"fmt"
	"strings"
	"sync"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/samber/lo"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/internal/scraper"
	"github.com/screenroom/screenroom/source"
	"github.com/screenroom/screenroom/util"
	lua "github.com/yuin/gopher-lua"
)

// IDfromName is the source id of the script with base name name.
func IDfromName(name string) string {
	return name + " custom"
}

// LoadSource runs the script at path with the bundled libraries and the
// TLS client preloaded. The script must define both entry points.
func LoadSource(path string) (source.Source, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state)

	if err := scraper.Load(state, path); err != nil {
		state.Close()
		return nil, err
	}

	name := util.FileStem(path)
	missing := lo.Filter([]string{constant.SearchItemsFn, constant.ItemInfoFn}, func(fn string, _ int) bool {
		return state.GetGlobal(fn).Type() != lua.LTFunction
	})
	if len(missing) > 0 {
		state.Close()
		return nil, fmt.Errorf("source %s does not define %s", name, strings.Join(missing, ", "))
	}

	return &luaSource{name: name, state: state}, nil
}

// luaSource serializes every call into its state; an LState is single-threaded.
type luaSource struct {
	name string

	mu    sync.Mutex
	state *lua.LState
}

func (s *luaSource) Name() string {
	return s.name
}

func (s *luaSource) ID() string {
	return IDfromName(s.name)
}

// Close releases the Lua state.
func (s *luaSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Close()
}

// call runs a global function and checks the type of its single return value.
// ctx cancels a script blocked on the network.
func (s *luaSource) call(ctx context.Context, fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	luaFn := s.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	s.state.SetContext(ctx)
	defer s.state.RemoveContext()

	err := s.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	retval := s.state.Get(-1)
	s.state.Pop(1)

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
