// Package scraper loads and installs Lua content source scripts.
package scraper

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/screenroom/screenroom/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

type compiled struct {
	digest string
	proto  *lua.FunctionProto
}

// protos maps a script path to its last compiled prototype.
var protos sync.Map

// Load runs the script at path inside L. Compiled prototypes are reused
// until the script's contents change.
func Load(L *lua.LState, path string) error {
	src, err := filesystem.API().ReadFile(path)
	if err != nil {
		return err
	}

	digest := checksum(src)

	var proto *lua.FunctionProto
	if cached, ok := protos.Load(path); ok && cached.(compiled).digest == digest {
		proto = cached.(compiled).proto
	} else {
		chunk, err := parse.Parse(bytes.NewReader(src), path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		proto, err = lua.Compile(chunk, path)
		if err != nil {
			return fmt.Errorf("compile %s: %w", path, err)
		}

		protos.Store(path, compiled{digest: digest, proto: proto})
	}

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}
