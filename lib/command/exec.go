package command

import (
	"github.com/letsrust/simple-redis/lib/db"
	"github.com/letsrust/simple-redis/lib/resp"
)

// OK is the canonical success reply for write commands.
var OK = resp.SimpleString("OK")

// --------------------------------------------------------------------------
// Dispatch (one atomic backend operation per command)
// --------------------------------------------------------------------------

func (c Get) Name() string { return "get" }

func (c Get) Execute(backend db.Backend) resp.Frame {
	value, ok := backend.Get(c.Key)
	if !ok {
		return resp.Null()
	}
	return value
}

func (c Set) Name() string { return "set" }

func (c Set) Execute(backend db.Backend) resp.Frame {
	backend.Set(c.Key, c.Value)
	return OK
}

func (c HGet) Name() string { return "hget" }

func (c HGet) Execute(backend db.Backend) resp.Frame {
	value, ok := backend.HGet(c.Key, c.Field)
	if !ok {
		return resp.Null()
	}
	return value
}

func (c HSet) Name() string { return "hset" }

func (c HSet) Execute(backend db.Backend) resp.Frame {
	backend.HSet(c.Key, c.Field, c.Value)
	return OK
}

func (c HGetAll) Name() string { return "hgetall" }

func (c HGetAll) Execute(backend db.Backend) resp.Frame {
	fields, ok := backend.HGetAll(c.Key)
	if !ok {
		// absent keys reply an empty array, present keys a map
		return resp.Array()
	}

	m := resp.NewMap()
	for _, pair := range fields {
		m.MapSet(pair.Key, pair.Value)
	}
	return m
}
