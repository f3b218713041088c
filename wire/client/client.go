package client

import (
	"fmt"

	"github.com/letsrust/simple-redis/lib/resp"
	"github.com/letsrust/simple-redis/wire/common"
	"github.com/letsrust/simple-redis/wire/transport"
)

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

// ServerError is an error reply received from the server
type ServerError struct {
	Msg string
}

func (e *ServerError) Error() string {
	return "server error: " + e.Msg
}

// --------------------------------------------------------------------------
// Client
// --------------------------------------------------------------------------

// Client executes commands against a server over a client transport
type Client struct {
	transport transport.IClientTransport
}

// NewClient connects the given transport and returns a ready client
func NewClient(t transport.IClientTransport, config common.ClientConfig) (*Client, error) {
	if err := t.Connect(config); err != nil {
		return nil, err
	}
	return &Client{transport: t}, nil
}

// Close closes the underlying transport
func (c *Client) Close() error {
	return c.transport.Close()
}

// do sends one command as an array of bulk strings and unwraps error replies
func (c *Client) do(args ...[]byte) (resp.Frame, error) {
	elems := make([]resp.Frame, len(args))
	for i, arg := range args {
		elems[i] = resp.BulkString(arg)
	}

	reply, err := c.transport.Send(resp.Array(elems...))
	if err != nil {
		return resp.Frame{}, err
	}
	if reply.Type == resp.TypeSimpleError {
		return resp.Frame{}, &ServerError{Msg: string(reply.Str)}
	}
	return reply, nil
}

// expectOK checks for the canonical "+OK" write reply
func expectOK(reply resp.Frame) error {
	if reply.Type != resp.TypeSimpleString || string(reply.Str) != "OK" {
		return fmt.Errorf("unexpected reply: %s", reply)
	}
	return nil
}

// --------------------------------------------------------------------------
// Commands
// --------------------------------------------------------------------------

// Set stores a value under key in the flat namespace
func (c *Client) Set(key string, value []byte) error {
	reply, err := c.do([]byte("set"), []byte(key), value)
	if err != nil {
		return err
	}
	return expectOK(reply)
}

// Get retrieves the value stored under key. The boolean reports whether
// the key exists.
func (c *Client) Get(key string) (resp.Frame, bool, error) {
	reply, err := c.do([]byte("get"), []byte(key))
	if err != nil {
		return resp.Frame{}, false, err
	}
	if reply.Type == resp.TypeNull {
		return resp.Frame{}, false, nil
	}
	return reply, true, nil
}

// HSet stores a value under key and field in the hash namespace
func (c *Client) HSet(key, field string, value []byte) error {
	reply, err := c.do([]byte("hset"), []byte(key), []byte(field), value)
	if err != nil {
		return err
	}
	return expectOK(reply)
}

// HGet retrieves the value stored under key and field. The boolean
// reports whether both exist.
func (c *Client) HGet(key, field string) (resp.Frame, bool, error) {
	reply, err := c.do([]byte("hget"), []byte(key), []byte(field))
	if err != nil {
		return resp.Frame{}, false, err
	}
	if reply.Type == resp.TypeNull {
		return resp.Frame{}, false, nil
	}
	return reply, true, nil
}

// HGetAll returns every field/value pair stored under key. An absent key
// yields an empty result.
func (c *Client) HGetAll(key string) ([]resp.Pair, error) {
	reply, err := c.do([]byte("hgetall"), []byte(key))
	if err != nil {
		return nil, err
	}

	switch reply.Type {
	case resp.TypeMap:
		return reply.Pairs, nil
	case resp.TypeArray:
		// absent keys reply an empty array instead of an empty map
		if len(reply.Elems) != 0 {
			return nil, fmt.Errorf("unexpected non-empty array reply")
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected reply: %s", reply)
	}
}
