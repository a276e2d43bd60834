package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/unkn0wn-root/cachestore/codec"
)

var ErrUnknownCodec = errors.New("config: unknown codec")

// parser collects the first parse error so Load reports one bad variable at a time.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) fail(name, raw string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("config: %s=%q: %w", name, raw, err)
	}
}

func (p *parser) str(name string) string {
	v, _ := p.lookup(name)
	return v
}

func (p *parser) num(name string) int {
	v := p.str(name)
	if v == "" {
		return 0
	}
	return p.parseInt(name, v)
}

func (p *parser) parseInt(name, v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(name, v, err)
		return 0
	}
	return n
}

// dur accepts Go durations ("750ms", "2s") or bare seconds.
func (p *parser) dur(name string) time.Duration {
	v := p.str(name)
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(name, v, err)
		return 0
	}
	return d
}

func codecByName(name string) (codec.Codec[any], error) {
	switch name {
	case "", "json":
		return codec.JSON[any]{}, nil
	case "msgpack":
		return codec.Msgpack[any]{}, nil
	case "cbor":
		return codec.NewCBOR[any](false)
	case "structpb":
		return codec.StructPB{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

func (p *parser) lower(name string) string { return strings.ToLower(p.str(name)) }
