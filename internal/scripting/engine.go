package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding gameplay formulas.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// core helpers first, formulas may call them
	for _, sub := range []string{"core", "combat", "items"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// AttackContext is the data passed to calc_attack.
type AttackContext struct {
	AttackerName string
	AttackerTag  string
	BaseDamage   int
	TargetName   string
	TargetTag    string
	TargetHealth int
	TargetMax    int
}

// AttackResult is returned by the Lua attack formula.
type AttackResult struct {
	Damage   int
	Critical bool
}

// CalcAttack calls the Lua calc_attack function. Script failures fall back
// to the base damage and are logged.
func (e *Engine) CalcAttack(ctx AttackContext) AttackResult {
	fallback := AttackResult{Damage: ctx.BaseDamage}

	fn := e.vm.GetGlobal("calc_attack")
	if fn == lua.LNil {
		e.log.Error("lua function calc_attack not found")
		return fallback
	}

	t := e.vm.NewTable()

	atk := e.vm.NewTable()
	atk.RawSetString("name", lua.LString(ctx.AttackerName))
	atk.RawSetString("tag", lua.LString(ctx.AttackerTag))
	atk.RawSetString("base_damage", lua.LNumber(ctx.BaseDamage))
	t.RawSetString("attacker", atk)

	tgt := e.vm.NewTable()
	tgt.RawSetString("name", lua.LString(ctx.TargetName))
	tgt.RawSetString("tag", lua.LString(ctx.TargetTag))
	tgt.RawSetString("health", lua.LNumber(ctx.TargetHealth))
	tgt.RawSetString("max_health", lua.LNumber(ctx.TargetMax))
	t.RawSetString("target", tgt)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_attack error", zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua calc_attack returned non-table")
		return fallback
	}

	return AttackResult{
		Damage:   max(lInt(rt, "damage"), 0),
		Critical: rt.RawGetString("critical") == lua.LTrue,
	}
}

// ItemHealPoints asks item_heal_points how much an item heals; base is used
// when the script has no opinion.
func (e *Engine) ItemHealPoints(item string, base int) int {
	v, ok := e.call("item_heal_points", lua.LString(item), lua.LNumber(base))
	if !ok || v == lua.LNil {
		return base
	}
	return int(lua.LVAsNumber(v))
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// call invokes a global Lua function and returns its single result.
func (e *Engine) call(name string, args ...lua.LValue) (lua.LValue, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return lua.LNil, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return lua.LNil, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return result, true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
