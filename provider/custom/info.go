package custom

import (
	"context"

	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/source"
	lua "github.com/yuin/gopher-lua"
)

// Info calls the script's info function. Stream URLs expire, so nothing is cached here.
func (s *luaSource) Info(ctx context.Context, id string) (*source.StreamInfo, error) {
	val, err := s.call(ctx, constant.ItemInfoFn, lua.LTTable, lua.LString(id))
	if err != nil {
		return nil, err
	}

	return infoFromTable(val.(*lua.LTable), id)
}
