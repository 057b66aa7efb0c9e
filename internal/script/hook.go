package script

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
)

// HandlerName is the global function a hook script must define.
const HandlerName = "handler"

// Errors returned by hook operations.
var (
	// ErrNoHandler indicates a script that does not define the handler
	// function.
	ErrNoHandler = errors.New("script defines no handler function")

	// ErrHookClosed indicates use after Close.
	ErrHookClosed = errors.New("hook is closed")
)

// Hook owns one sandboxed Lua state with a loaded handler script.
//
// gopher-lua states are not goroutine-safe; the mutex serializes access
// from Go code.
type Hook struct {
	mu     sync.Mutex
	state  *lua.LState
	id     string
	log    zerolog.Logger
	closed bool
}

// New creates an empty sandboxed hook. Load a script before handing it to
// the dispatcher.
func New(log zerolog.Logger) *Hook {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})
	openSafeLibraries(L)
	sandbox(L)

	id := uuid.New().String()
	return &Hook{
		state: L,
		id:    id,
		log:   log.With().Str("hook", id).Logger(),
	}
}

// ID returns the hook's instance identifier.
func (h *Hook) ID() string {
	return h.id
}

// LoadFile loads a handler script from a file.
func (h *Hook) LoadFile(path string) error {
	return h.load(func(L *lua.LState) error { return L.DoFile(path) }, path)
}

// LoadString loads a handler script from source text.
func (h *Hook) LoadString(code string) error {
	return h.load(func(L *lua.LState) error { return L.DoString(code) }, "<string>")
}

func (h *Hook) load(do func(*lua.LState) error, source string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHookClosed
	}

	if err := h.runRecovered(func() error { return do(h.state) }); err != nil {
		return fmt.Errorf("loading hook script %s: %w", source, err)
	}

	if fn := h.state.GetGlobal(HandlerName); fn.Type() != lua.LTFunction {
		return fmt.Errorf("%w: %s", ErrNoHandler, source)
	}

	h.log.Info().Str("source", source).Msg("hook script loaded")
	return nil
}

// Handle invokes the script's handler function. It reports whether the
// script consumed the command; script errors are logged and count as not
// handled. The signature matches the dispatcher's command hook.
func (h *Hook) Handle(command, extra string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	fn := h.state.GetGlobal(HandlerName)
	if fn.Type() != lua.LTFunction {
		return false
	}

	var ret lua.LValue
	err := h.runRecovered(func() error {
		if err := h.state.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LString(command), lua.LString(extra)); err != nil {
			return err
		}
		ret = h.state.Get(-1)
		h.state.Pop(1)
		return nil
	})
	if err != nil {
		h.log.Warn().Str("command", command).Err(err).Msg("hook script failed")
		return false
	}

	return lua.LVAsBool(ret)
}

// Close releases the Lua state. Safe to call more than once.
func (h *Hook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	h.state.Close()
}

// runRecovered converts Lua panics into errors.
func (h *Hook) runRecovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// openSafeLibraries opens the side-effect-free parts of the stdlib.
// io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes the base-library escape hatches.
func sandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}
