// Package script runs user Lua handlers for dispatch commands the binding
// grammar does not know. A hook script exposes a global
//
//	function handler(command, extra)
//	    ...
//	    return true
//	end
//
// returning true when it consumed the command. Scripts run sandboxed: the
// io, os, debug and package libraries are never opened.
package script
